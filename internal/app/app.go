package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"CallingHome/internal/compliance"
	"CallingHome/internal/config"
	"CallingHome/internal/console"
	"CallingHome/internal/export"
	"CallingHome/internal/history"
	"CallingHome/internal/message"
	"CallingHome/internal/session"
	"CallingHome/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNoMessageYet      = errors.New("no message generated yet")
	ErrInvalidMenuChoice = errors.New("invalid menu option")
)

const historyLimit = 10

// Recorder keeps the audit trail of generated and saved messages
type Recorder interface {
	RecordGeneration(ctx context.Context, g history.Generation) error
	RecordExport(ctx context.Context, e history.Export) error
	Recent(ctx context.Context, limit int) ([]history.Generation, error)
	Exports(ctx context.Context, sessionID string) ([]history.Export, error)
}

// App runs the interactive menu
type App struct {
	cfg     config.Config
	con     *console.Console
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	history Recorder
	now     func() time.Time

	generated metric.Int64Counter
	declined  metric.Int64Counter
	saved     metric.Int64Counter
	invalid   metric.Int64Counter
}

// Option customizes an App
type Option func(*App)

// WithTelemetry sets the tracer and meter used for menu actions
func WithTelemetry(tracer trace.Tracer, meter metric.Meter) Option {
	return func(a *App) {
		a.tracer = tracer
		a.meter = meter
	}
}

// WithHistory enables the generation ledger
func WithHistory(r Recorder) Option {
	return func(a *App) { a.history = r }
}

// WithClock replaces time.Now, used for file names and ledger timestamps
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates an App writing to con
func New(cfg config.Config, con *console.Console, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		cfg:    cfg,
		con:    con,
		logger: logger,
		now:    time.Now,
	}
	a.tracer, a.meter = telemetry.Noop()
	for _, opt := range opts {
		opt(a)
	}

	var err error
	if a.generated, err = a.meter.Int64Counter("callinghome.messages.generated",
		metric.WithDescription("Opt-in messages generated")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if a.declined, err = a.meter.Int64Counter("callinghome.acknowledgements.declined",
		metric.WithDescription("Generations blocked by a missing acknowledgement")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if a.saved, err = a.meter.Int64Counter("callinghome.messages.saved",
		metric.WithDescription("Messages written to files")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if a.invalid, err = a.meter.Int64Counter("callinghome.menu.invalid",
		metric.WithDescription("Unrecognized menu choices")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return a, nil
}

// NewSession starts a session with the configured sender, audience and channel
func NewSession(cfg config.Config) (*session.Session, error) {
	audience, err := message.ParseAudience(cfg.Audience)
	if err != nil {
		return nil, err
	}
	channel, err := message.ParseChannel(cfg.Channel)
	if err != nil {
		return nil, err
	}

	sess := session.New(cfg.SenderName)
	sess.SetAudience(audience)
	sess.SetChannel(channel)
	return sess, nil
}

// Run starts a fresh session and runs the menu until Exit or end of input
func (a *App) Run(ctx context.Context) error {
	sess, err := NewSession(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return a.RunSession(ctx, sess)
}

// RunSession runs the menu loop over sess
func (a *App) RunSession(ctx context.Context, sess *session.Session) error {
	a.logger.Info("created new session", "session_id", sess.ID)

	for {
		a.drawMenu(sess)

		choice, err := a.con.Prompt("Select: ")
		if errors.Is(err, console.ErrLineTooLong) {
			choice, err = "", nil
		}
		if err != nil {
			return a.finish(sess, err)
		}

		quit, err := a.dispatch(ctx, sess, choice)
		if err != nil {
			return a.finish(sess, err)
		}
		if quit {
			return a.finish(sess, nil)
		}
	}
}

func (a *App) finish(sess *session.Session, err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		a.logger.Error("menu loop stopped", "session_id", sess.ID, "error", err)
		return err
	}
	a.con.Heading("Goodbye.")
	a.logger.Info("session ended", "session_id", sess.ID, "duration", time.Since(sess.StartTime).String())
	return nil
}

func (a *App) drawMenu(sess *session.Session) {
	a.con.ClearScreen()
	a.con.Banner()

	loc := sess.Location()
	if loc == "" {
		loc = "(not set)"
	}
	ack := "NO"
	if sess.Acknowledged() {
		ack = "YES"
	}

	a.con.Heading("Current settings:")
	a.con.Item("  Sender:   " + sess.Sender())
	a.con.Item("  Location: " + loc)
	a.con.Item("  Audience: " + sess.Audience().String())
	a.con.Item("  Channel:  " + sess.Channel().String())
	a.con.Item("  Compliant-use acknowledged: " + ack)
	a.con.Blank()

	a.con.Heading("Menu:")
	a.con.Item("  1) Set sender name")
	a.con.Item("  2) Set city/state")
	a.con.Item("  3) Choose audience (lawyer / lawmaker)")
	a.con.Item("  4) Choose channel (sms / email)")
	a.con.Item("  5) View compliance checklist")
	a.con.Item("  6) Generate opt-in message")
	a.con.Item("  7) Re-read last message")
	a.con.Item("  8) Save last message to file")
	a.con.Item("  9) Show generation history")
	a.con.Warn("  0) Exit")
	a.con.Blank()
}

// dispatch runs one menu action and reports whether the loop should stop
func (a *App) dispatch(ctx context.Context, sess *session.Session, choice string) (bool, error) {
	action := actionName(choice)
	ctx, span := a.tracer.Start(ctx, "menu."+action,
		trace.WithAttributes(attribute.String("session.id", sess.ID)))
	defer span.End()

	a.logger.Info("menu action", "session_id", sess.ID, "action", action)

	var err error
	switch choice {
	case "0":
		return true, nil
	case "1":
		err = a.setSender(sess)
	case "2":
		err = a.setLocation(sess)
	case "3":
		err = a.setAudience(sess)
	case "4":
		err = a.setChannel(sess)
	case "5":
		err = a.showChecklist(sess)
	case "6":
		err = a.generate(ctx, sess)
	case "7":
		err = a.reread(sess)
	case "8":
		err = a.save(ctx, sess)
	case "9":
		err = a.showHistory(ctx, sess)
	default:
		a.invalid.Add(ctx, 1)
		err = ErrInvalidMenuChoice
	}

	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, io.EOF) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	return false, a.report(sess, err)
}

// report turns a blocked action into a notice. Other errors are returned.
func (a *App) report(sess *session.Session, err error) error {
	if err == nil {
		return nil
	}

	var notice string
	switch {
	case errors.Is(err, session.ErrMissingLocation):
		notice = "Set city/state first (menu option 2)."
	case errors.Is(err, session.ErrAcknowledgementDeclined):
		notice = "Acknowledgement not provided. Message generation blocked."
	case errors.Is(err, ErrNoMessageYet), errors.Is(err, export.ErrNoMessage):
		notice = "No message yet. Generate one with option 6."
	case errors.Is(err, ErrInvalidMenuChoice):
		notice = "Unknown option."
	default:
		return err
	}

	a.logger.Info("action blocked", "session_id", sess.ID, "reason", err.Error())
	a.con.Warn(notice)
	return a.con.Pause("Press Enter to continue...")
}

func actionName(choice string) string {
	switch choice {
	case "0":
		return "exit"
	case "1":
		return "set_sender"
	case "2":
		return "set_location"
	case "3":
		return "set_audience"
	case "4":
		return "set_channel"
	case "5":
		return "view_checklist"
	case "6":
		return "generate"
	case "7":
		return "reread"
	case "8":
		return "save"
	case "9":
		return "history"
	default:
		return "invalid"
	}
}

func (a *App) setSender(sess *session.Session) error {
	name, err := a.con.PromptNonEmpty("Enter sender name", sess.Sender())
	if err != nil {
		return err
	}
	return sess.SetSender(name)
}

func (a *App) setLocation(sess *session.Session) error {
	city, err := a.con.PromptNonEmpty("Enter city", sess.City())
	if err != nil {
		return err
	}
	state, err := a.con.PromptNonEmpty("Enter state (e.g., TX)", sess.State())
	if err != nil {
		return err
	}
	return sess.SetLocation(city, state)
}

func (a *App) setAudience(sess *session.Session) error {
	labels := make([]string, len(message.Audiences))
	for i, aud := range message.Audiences {
		labels[i] = aud.String()
	}
	idx, err := a.con.Choose("Audience:", labels, 0)
	if err != nil {
		return err
	}
	sess.SetAudience(message.Audiences[idx])
	return nil
}

func (a *App) setChannel(sess *session.Session) error {
	labels := make([]string, len(message.Channels))
	for i, ch := range message.Channels {
		labels[i] = ch.String()
	}
	idx, err := a.con.Choose("Channel:", labels, 0)
	if err != nil {
		return err
	}
	sess.SetChannel(message.Channels[idx])
	return nil
}

func (a *App) renderChecklist(cl compliance.Checklist) {
	a.con.Heading(cl.Title)
	a.con.Blank()
	for i, item := range cl.Items {
		a.con.Item(fmt.Sprintf("  %d. %s", i+1, item))
	}
}

func (a *App) showChecklist(sess *session.Session) error {
	a.con.ClearScreen()
	a.con.Banner()
	a.renderChecklist(sess.Checklist())
	a.con.Blank()
	return a.con.Pause("Press Enter to return to menu...")
}

// acknowledge shows the checklist and runs the agreement gate
func (a *App) acknowledge(cl compliance.Checklist) bool {
	a.con.ClearScreen()
	a.con.Banner()
	a.con.Heading("Before generating messages, please review the compliance checklist.")
	a.con.Blank()
	a.renderChecklist(cl)
	a.con.Blank()
	a.con.Heading("This tool generates text only. You are responsible for compliant use.")
	a.con.Heading("If you do not agree, exit the app.")
	a.con.Blank()
	a.con.Ask(compliance.AcknowledgementPrompt)
	return compliance.RequireAcknowledgement(a.con)
}

func (a *App) generate(ctx context.Context, sess *session.Session) error {
	attrs := metric.WithAttributes(
		attribute.String("audience", sess.Audience().String()),
		attribute.String("channel", sess.Channel().String()),
	)

	msg, err := sess.Generate(a.acknowledge)
	if err != nil {
		if errors.Is(err, session.ErrAcknowledgementDeclined) {
			a.declined.Add(ctx, 1, attrs)
		}
		return err
	}
	a.generated.Add(ctx, 1, attrs)
	a.logger.Info("message generated",
		"session_id", sess.ID,
		"audience", sess.Audience().String(),
		"channel", sess.Channel().String(),
		"location", sess.Location(),
	)

	if a.history != nil {
		g := history.Generation{
			SessionID: sess.ID,
			Sender:    sess.Sender(),
			City:      sess.City(),
			State:     sess.State(),
			Audience:  sess.Audience().String(),
			Channel:   sess.Channel().String(),
			Message:   msg,
			CreatedAt: a.now(),
		}
		if err := a.history.RecordGeneration(ctx, g); err != nil {
			a.logger.Warn("failed to record generation", "session_id", sess.ID, "error", err)
		}
	}

	a.con.ClearScreen()
	a.con.Banner()
	a.con.Heading(fmt.Sprintf("Generated opt-in message (%s / %s):", sess.Audience(), sess.Channel()))
	a.con.Blank()
	a.con.MessageBox(msg)
	a.con.Blank()
	return a.con.Pause("Press Enter to return to menu...")
}

func (a *App) reread(sess *session.Session) error {
	if !sess.HasMessage() {
		return ErrNoMessageYet
	}
	a.con.ClearScreen()
	a.con.Banner()
	a.con.Heading("Last generated message:")
	a.con.Blank()
	a.con.MessageBox(sess.LastMessage())
	a.con.Blank()
	return a.con.Pause("Press Enter to return to menu...")
}

func (a *App) save(ctx context.Context, sess *session.Session) error {
	if !sess.HasMessage() {
		return ErrNoMessageYet
	}

	at := a.now()
	path, err := export.Save(a.cfg.OutputDir, sess.City(), sess.State(), sess.LastMessage(), at)
	if err != nil {
		a.logger.Error("failed to save message", "session_id", sess.ID, "error", err)
		a.con.Warn("Could not save message: " + err.Error())
		return a.con.Pause("Press Enter to continue...")
	}

	a.saved.Add(ctx, 1)
	a.logger.Info("message saved", "session_id", sess.ID, "path", path)
	if a.history != nil {
		if err := a.history.RecordExport(ctx, history.Export{SessionID: sess.ID, Path: path, CreatedAt: at}); err != nil {
			a.logger.Warn("failed to record export", "session_id", sess.ID, "error", err)
		}
	}

	a.con.Ask("Saved to: ")
	a.con.Item(path)
	return a.con.Pause("Press Enter to continue...")
}

func (a *App) showHistory(ctx context.Context, sess *session.Session) error {
	a.con.ClearScreen()
	a.con.Banner()

	if a.history == nil {
		a.con.Warn("History is disabled.")
		a.con.Blank()
		return a.con.Pause("Press Enter to return to menu...")
	}

	recent, err := a.history.Recent(ctx, historyLimit)
	switch {
	case err != nil:
		a.logger.Error("failed to load history", "error", err)
		a.con.Warn("Could not load history: " + err.Error())
	case len(recent) == 0:
		a.con.Warn("No messages generated yet.")
	default:
		a.con.Heading("Recent generated messages:")
		a.con.Blank()
		for _, g := range recent {
			a.con.Item(fmt.Sprintf("  %s  %-8s %-5s %s",
				g.CreatedAt.Local().Format("2006-01-02 15:04:05"), g.Audience, g.Channel, message.Location(g.City, g.State)))
		}
	}

	if err == nil {
		exports, err := a.history.Exports(ctx, sess.ID)
		switch {
		case err != nil:
			a.logger.Error("failed to load exports", "session_id", sess.ID, "error", err)
			a.con.Warn("Could not load saved files: " + err.Error())
		case len(exports) > 0:
			a.con.Blank()
			a.con.Heading("Saved this session:")
			for _, e := range exports {
				a.con.Item("  " + e.Path)
			}
		}
	}
	a.con.Blank()
	return a.con.Pause("Press Enter to return to menu...")
}
