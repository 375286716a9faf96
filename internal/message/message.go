// Package message defines the displayable chat entries handled by the chat log.
//
// A Message is a small tagged union. Shared fields live on the struct and the
// Kind selects which payload is meaningful. Callers own message identity and
// ordering; nothing in this package sorts or deduplicates.
package message

import (
	"image"
	"time"
)

// Side identifies who sent a message.
type Side int

const (
	Mine Side = iota
	Theirs
)

func (s Side) String() string {
	if s == Mine {
		return "mine"
	}
	return "theirs"
}

// Kind is the message variant.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindAnnotation
	KindReadMarker
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindAnnotation:
		return "annotation"
	case KindReadMarker:
		return "read_marker"
	default:
		return "unknown"
	}
}

// ViewKind names the visual template a message renders with.
type ViewKind string

const (
	ViewTextMine    ViewKind = "text_mine"
	ViewTextTheirs  ViewKind = "text_theirs"
	ViewEmojiMine   ViewKind = "emoji_mine"
	ViewEmojiTheirs ViewKind = "emoji_theirs"
	ViewImageMine   ViewKind = "image_mine"
	ViewImageTheirs ViewKind = "image_theirs"
	ViewAnnotation  ViewKind = "annotation"
	ViewReadMarker  ViewKind = "read_marker"
)

// Message is a single chat log entry.
type Message struct {
	Kind          Kind
	Side          Side
	Time          time.Time
	ShowTimestamp bool
	HasError      bool // only meaningful for text and image messages

	Text  string      // text, annotation and read marker payload
	Image image.Image // image payload
}

// NewText creates a text message with its timestamp shown.
func NewText(text string, side Side, t time.Time) Message {
	return Message{Kind: KindText, Side: side, Time: t, ShowTimestamp: true, Text: text}
}

// NewImage creates an image message with its timestamp shown.
func NewImage(img image.Image, side Side, t time.Time) Message {
	return Message{Kind: KindImage, Side: side, Time: t, ShowTimestamp: true, Image: img}
}

// NewAnnotation creates a centered informational line such as
// "Alice has gone offline".
func NewAnnotation(text string, side Side, t time.Time) Message {
	return Message{Kind: KindAnnotation, Side: side, Time: t, ShowTimestamp: true, Text: text}
}

// NewReadMarker creates the synthetic "read" row. It is built on demand for
// rendering and never stored by callers.
func NewReadMarker(text string, t time.Time) Message {
	return Message{Kind: KindReadMarker, Side: Mine, Time: t, Text: text}
}

// IsAnnotation reports whether the message is an annotation or read marker.
func (m Message) IsAnnotation() bool {
	return m.Kind == KindAnnotation || m.Kind == KindReadMarker
}

// IsBigEmoji reports whether the message is a text message made only of emoji.
func (m Message) IsBigEmoji() bool {
	return m.Kind == KindText && IsPureEmoji(m.Text)
}

// ShowsError reports whether the error affordance applies to this message.
func (m Message) ShowsError() bool {
	return m.HasError && (m.Kind == KindText || m.Kind == KindImage)
}

// ViewKind returns the visual template for the message.
func (m Message) ViewKind() ViewKind {
	switch m.Kind {
	case KindReadMarker:
		return ViewReadMarker
	case KindAnnotation:
		return ViewAnnotation
	case KindImage:
		if m.Side == Mine {
			return ViewImageMine
		}
		return ViewImageTheirs
	default:
		big := IsPureEmoji(m.Text)
		switch {
		case big && m.Side == Mine:
			return ViewEmojiMine
		case big:
			return ViewEmojiTheirs
		case m.Side == Mine:
			return ViewTextMine
		default:
			return ViewTextTheirs
		}
	}
}
