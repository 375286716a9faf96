package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// castHeader is the first line of an asciinema v2 recording.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// GenerateASCIICast writes frames as an asciinema v2 recording. Each frame
// redraws the whole screen and stays up for its delay. Annotations become
// marker events.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int) error {
	enc := json.NewEncoder(w)

	header := castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Title:   "parley",
		Env:     map[string]string{"TERM": "xterm-256color", "SHELL": "/bin/sh"},
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var at time.Duration
	for i, f := range frames {
		ts := at.Seconds()
		if f.Annotation != "" {
			if err := enc.Encode([]any{ts, "m", f.Annotation}); err != nil {
				return fmt.Errorf("writing marker %d: %w", i, err)
			}
		}
		data := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{ts, "o", data}); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
		at += f.Delay
	}
	return nil
}

// Duration returns how long frames take to play.
func Duration(frames []Frame) time.Duration {
	var d time.Duration
	for _, f := range frames {
		d += f.Delay
	}
	return d
}
