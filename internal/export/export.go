package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// TimestampLayout is the second-precision stamp embedded in file names
const TimestampLayout = "20060102_150405"

var ErrNoMessage = errors.New("no message to save")

// FileName builds calling_home_<city>_<state>_<timestamp>.txt
func FileName(city, state string, at time.Time) string {
	return fmt.Sprintf("calling_home_%s_%s_%s.txt", sanitizeCity(city), sanitizeState(state), at.Format(TimestampLayout))
}

// Save writes message plus a trailing newline into dir and returns the path.
// An existing file with the same name is overwritten.
func Save(dir, city, state, message string, at time.Time) (string, error) {
	if message == "" {
		return "", ErrNoMessage
	}
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, FileName(city, state, at))
	if err := os.WriteFile(path, []byte(message+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func sanitizeCity(city string) string {
	kept := strings.Map(func(r rune) rune {
		if isAlnum(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, city)
	return strings.ReplaceAll(strings.TrimSpace(kept), " ", "_")
}

func sanitizeState(state string) string {
	return strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, state)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
