package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// AppName is shown in the banner
const AppName = "Calling Home"

const (
	bannerWidth = 58
	maxBoxWidth = 90

	// MaxLineLength caps one line of input in bytes
	MaxLineLength = 4096
)

// ErrLineTooLong is returned for an input line over MaxLineLength.
// The rest of that line is discarded, so reading can continue.
var ErrLineTooLong = errors.New("input line too long")

// Console reads line-based input and writes themed output
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	pal    Palette
}

// New creates a console over the given input and output
func New(in io.Reader, out io.Writer, pal Palette) *Console {
	if pal == nil {
		pal = Plain()
	}
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
		pal:    pal,
	}
}

// ClearScreen clears the terminal when escape sequences are available
func (c *Console) ClearScreen() {
	if c.pal.Colored() {
		fmt.Fprint(c.out, "\x1b[H\x1b[2J")
	}
}

// Banner prints the boxed application title
func (c *Console) Banner() {
	bar := strings.Repeat("═", bannerWidth)
	fmt.Fprintln(c.out, c.pal.Bright(c.pal.Red("╔"+bar+"╗")))
	fmt.Fprintln(c.out, c.pal.Bright(c.pal.White("║")+c.pal.Blue(center(AppName, bannerWidth))+c.pal.White("║")))
	fmt.Fprintln(c.out, c.pal.Bright(c.pal.Red("╚"+bar+"╝")))
}

// Heading prints a white line
func (c *Console) Heading(text string) {
	fmt.Fprintln(c.out, c.pal.White(text))
}

// Item prints a blue line
func (c *Console) Item(text string) {
	fmt.Fprintln(c.out, c.pal.Blue(text))
}

// Warn prints a red line
func (c *Console) Warn(text string) {
	fmt.Fprintln(c.out, c.pal.Red(text))
}

// Ask prints white text without a line break, ahead of an answer
func (c *Console) Ask(text string) {
	fmt.Fprint(c.out, c.pal.White(text))
}

// Blank prints an empty line
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// ReadLine returns the next raw input line, or io.EOF when input ends.
// Lines longer than MaxLineLength yield ErrLineTooLong.
func (c *Console) ReadLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := c.reader.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > MaxLineLength+2 {
				tooLong = true
				line = nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 && !tooLong {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		break
	}

	text := strings.TrimSuffix(strings.TrimSuffix(string(line), "\n"), "\r")
	if tooLong || len(text) > MaxLineLength {
		return "", ErrLineTooLong
	}
	return text, nil
}

// Prompt prints label and returns the trimmed answer
func (c *Console) Prompt(label string) (string, error) {
	c.Ask(label)
	line, err := c.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptNonEmpty asks until a non-empty value is given.
// When def is non-empty, pressing Enter accepts it.
func (c *Console) PromptNonEmpty(label, def string) (string, error) {
	for {
		var prompt string
		if def != "" {
			prompt = c.pal.White(label+" ") + c.pal.Blue("["+def+"]") + c.pal.White(": ")
		} else {
			prompt = c.pal.White(label + ": ")
		}
		fmt.Fprint(c.out, prompt)

		line, err := c.ReadLine()
		if errors.Is(err, ErrLineTooLong) {
			c.Warn("Input is too long.")
			continue
		}
		if err != nil {
			return "", err
		}
		val := strings.TrimSpace(line)
		if val == "" {
			val = def
		}
		if val != "" {
			return val, nil
		}
		c.Warn("Please enter a value.")
	}
}

// Choose shows a numbered list and returns the index of the selected option.
// An empty answer selects defaultIndex.
func (c *Console) Choose(label string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to choose from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	c.Heading(label)
	for i, opt := range options {
		line := fmt.Sprintf("  %d) %s", i+1, opt)
		if i == defaultIndex {
			c.Item(line)
		} else {
			c.Heading(line)
		}
	}

	for {
		prompt := c.pal.White(fmt.Sprintf("Choose 1-%d ", len(options))) +
			c.pal.Blue(fmt.Sprintf("[%d]", defaultIndex+1)) + c.pal.White(": ")
		fmt.Fprint(c.out, prompt)

		line, err := c.ReadLine()
		if errors.Is(err, ErrLineTooLong) {
			c.Warn("Invalid choice.")
			continue
		}
		if err != nil {
			return 0, err
		}
		raw := strings.TrimSpace(line)
		if raw == "" {
			return defaultIndex, nil
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Warn("Invalid choice.")
	}
}

// Pause waits for Enter. Whatever was typed is ignored.
func (c *Console) Pause(text string) error {
	_, err := c.Prompt(text)
	if errors.Is(err, ErrLineTooLong) {
		return nil
	}
	return err
}

// MessageBox prints msg inside a border, wrapping lines wider than the box
func (c *Console) MessageBox(msg string) {
	lines := []string{""}
	if msg != "" {
		lines = strings.Split(strings.TrimSuffix(msg, "\n"), "\n")
	}

	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	width := min(longest+4, maxBoxWidth)
	inner := width - 4

	fmt.Fprintln(c.out, c.pal.Red("┌"+strings.Repeat("─", width-2)+"┐"))
	for _, l := range lines {
		for _, chunk := range wrap(l, inner) {
			fmt.Fprintln(c.out, c.pal.White("│ ")+c.pal.Blue(pad(chunk, inner))+c.pal.White(" │"))
		}
	}
	fmt.Fprintln(c.out, c.pal.Red("└"+strings.Repeat("─", width-2)+"┘"))
}

func wrap(line string, width int) []string {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return []string{line}
	}
	var chunks []string
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	return append(chunks, string(runes))
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
