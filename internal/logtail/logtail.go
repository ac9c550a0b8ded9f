// Package logtail reads the tail of clientdesk's JSON log file and renders it
// for the terminal.
package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options select which log lines Tail keeps.
type Options struct {
	// Lines caps the result to the newest N matching lines. Zero keeps all.
	Lines int
	// MinLevel drops JSON lines below this level. Lines whose level cannot be
	// read are kept.
	MinLevel zerolog.Level
	// Component keeps only lines whose "component" field matches.
	Component string
}

type lineMeta struct {
	Level     string `json:"level"`
	Component string `json:"component"`
}

// Tail returns the newest lines of the file at path that satisfy opts, oldest
// first. A missing file yields no lines.
func Tail(path string, opts Options) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []string
	next := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || !opts.matches(line) {
			continue
		}
		if opts.Lines <= 0 || len(ring) < opts.Lines {
			ring = append(ring, line)
			continue
		}
		ring[next] = line
		next = (next + 1) % opts.Lines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if next == 0 {
		return ring, nil
	}
	return slices.Concat(ring[next:], ring[:next]), nil
}

func (o Options) matches(line string) bool {
	if o.MinLevel <= zerolog.TraceLevel && o.Component == "" {
		return true
	}
	var meta lineMeta
	if err := json.Unmarshal([]byte(line), &meta); err != nil {
		return o.Component == ""
	}
	if o.Component != "" && meta.Component != o.Component {
		return false
	}
	if lvl, err := zerolog.ParseLevel(meta.Level); err == nil && lvl != zerolog.NoLevel {
		return lvl >= o.MinLevel
	}
	return true
}

// Render writes lines in zerolog's console format. Lines that are not JSON
// events are copied through unchanged.
func Render(w io.Writer, lines []string, color bool) error {
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}
	for _, line := range lines {
		if _, err := console.Write([]byte(line)); err == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
