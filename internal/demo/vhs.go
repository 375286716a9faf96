package demo

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// VHSConfig configures the generated VHS tape.
type VHSConfig struct {
	// Output is the file VHS renders to (gif, mp4 or webm)
	Output string

	// Command plays the recording inside the VHS terminal
	Command string

	// Width and Height are the terminal size in cells
	Width  int
	Height int

	FontSize   int
	FontFamily string
	Padding    int
	Theme      string
}

// DefaultVHSConfig returns the default tape configuration.
func DefaultVHSConfig() VHSConfig {
	return VHSConfig{
		Output:     "demo.gif",
		Width:      120,
		Height:     40,
		FontSize:   14,
		FontFamily: "JetBrains Mono",
		Padding:    20,
		Theme:      "Catppuccin Mocha",
	}
}

// pixels converts the cell size to the pixel size VHS expects. Cells are
// roughly 0.6em wide and 1.2em tall.
func (c VHSConfig) pixels() (width, height int) {
	width = c.Width*c.FontSize*3/5 + 2*c.Padding
	height = c.Height*c.FontSize*6/5 + 2*c.Padding
	return width, height
}

// GenerateVHSTape writes a VHS tape that records cfg.Command playing the
// frames. The tape sleeps for the frames' total duration; annotations are
// written as comments at their offsets.
func GenerateVHSTape(w io.Writer, frames []Frame, cfg VHSConfig) error {
	if cfg.Command == "" {
		return fmt.Errorf("vhs tape needs a command to play the frames")
	}
	width, height := cfg.pixels()

	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by parley demo. Render with: vhs <this file>\n\n")
	fmt.Fprintf(&b, "Output %q\n\n", cfg.Output)
	fmt.Fprintf(&b, "Set Shell \"bash\"\n")
	fmt.Fprintf(&b, "Set FontSize %d\n", cfg.FontSize)
	if cfg.FontFamily != "" {
		fmt.Fprintf(&b, "Set FontFamily %q\n", cfg.FontFamily)
	}
	fmt.Fprintf(&b, "Set Width %d\n", width)
	fmt.Fprintf(&b, "Set Height %d\n", height)
	fmt.Fprintf(&b, "Set Padding %d\n", cfg.Padding)
	if cfg.Theme != "" {
		fmt.Fprintf(&b, "Set Theme %q\n", cfg.Theme)
	}
	b.WriteString("\n")

	b.WriteString("Hide\n")
	fmt.Fprintf(&b, "Type %q\n", cfg.Command)
	b.WriteString("Enter\n")
	b.WriteString("Show\n\n")

	var at time.Duration
	for _, f := range frames {
		if f.Annotation != "" {
			fmt.Fprintf(&b, "# %s %s\n", formatOffset(at), f.Annotation)
		}
		at += f.Delay
	}
	fmt.Fprintf(&b, "Sleep %dms\n", Duration(frames).Milliseconds())

	_, err := io.WriteString(w, b.String())
	return err
}

// formatOffset formats d as m:ss.s.
func formatOffset(d time.Duration) string {
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, s)
}
