// Package rowindex maps between logical message indices and physical list rows.
//
// The chat log is drawn as a two-section list. Section 0 holds committed
// messages plus, when a read marker exists, one synthetic annotation row.
// Section 1 holds pending messages. Within a section row 0 is the top row,
// which is the oldest message; logical indices count from the newest message,
// so the two orderings run in opposite directions.
//
// A Layout is a value: the engine keeps one and swaps counts and read info as
// the data source changes. Forward and inverse mapping are pure functions of
// the Layout.
package rowindex

import (
	"fmt"
	"time"
)

// Section identifies one of the two list sections.
type Section int

const (
	SectionCommitted Section = 0
	SectionPending   Section = 1
)

// Position is a physical row coordinate in the list.
type Position struct {
	Section Section
	Row     int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Section, p.Row)
}

// Kind is the category of a logical index.
type Kind int

const (
	Normal Kind = iota
	Pending
	ReadAnnotation
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Pending:
		return "pending"
	case ReadAnnotation:
		return "read"
	default:
		return "unknown"
	}
}

// Index is a logical message index. Value is meaningful for Normal and
// Pending; Date is meaningful for ReadAnnotation.
type Index struct {
	Kind  Kind
	Value int
	Date  time.Time
}

// NormalIndex returns the logical index of the i-th newest committed message.
func NormalIndex(i int) Index { return Index{Kind: Normal, Value: i} }

// PendingIndex returns the logical index of the i-th newest pending message.
func PendingIndex(i int) Index { return Index{Kind: Pending, Value: i} }

// ReadIndex returns the logical index of the read annotation row.
func ReadIndex(date time.Time) Index { return Index{Kind: ReadAnnotation, Date: date} }

// Equal reports whether two indices denote the same logical row.
func (i Index) Equal(o Index) bool {
	if i.Kind != o.Kind {
		return false
	}
	if i.Kind == ReadAnnotation {
		return i.Date.Equal(o.Date)
	}
	return i.Value == o.Value
}

func (i Index) String() string {
	if i.Kind == ReadAnnotation {
		return "read(" + i.Date.Format(time.RFC3339) + ")"
	}
	return fmt.Sprintf("%s(%d)", i.Kind, i.Value)
}

// ReadInfo locates the read marker: the committed message it is attached to
// and the time it was read.
type ReadInfo struct {
	Index int
	Date  time.Time
}

// Layout is the information needed to translate indices: cached counts of
// both sections and the optional read marker.
type Layout struct {
	Committed int
	Pending   int
	Read      *ReadInfo
}

// HasRead reports whether the layout carries a read marker.
func (l Layout) HasRead() bool {
	return l.Read != nil
}

// RowCount returns the number of physical rows in a section.
func (l Layout) RowCount(s Section) int {
	if s == SectionPending {
		return l.Pending
	}
	if l.Read != nil {
		return l.Committed + 1
	}
	return l.Committed
}

// InRange reports whether p addresses an existing physical row.
func (l Layout) InRange(p Position) bool {
	if p.Section != SectionCommitted && p.Section != SectionPending {
		return false
	}
	return p.Row >= 0 && p.Row < l.RowCount(p.Section)
}

// Logical maps a physical position to the logical index shown there.
func (l Layout) Logical(p Position) Index {
	if p.Section == SectionPending {
		return PendingIndex(l.Pending - p.Row - 1)
	}

	if l.Read == nil {
		return NormalIndex(l.Committed - p.Row - 1)
	}

	virtualRow := l.Committed - p.Row
	switch {
	case virtualRow == l.Read.Index:
		return ReadIndex(l.Read.Date)
	case virtualRow < l.Read.Index:
		return NormalIndex(virtualRow)
	default:
		return NormalIndex(virtualRow - 1)
	}
}

// Position maps a logical index to its physical row. The second result is
// false when the index is not currently materialized in the list.
func (l Layout) Position(idx Index) (Position, bool) {
	switch idx.Kind {
	case Normal:
		if idx.Value < 0 {
			return Position{}, false
		}
		row := l.Committed - idx.Value
		if l.Read != nil && idx.Value < l.Read.Index {
			return Position{Section: SectionCommitted, Row: row}, true
		}
		if row > 0 {
			return Position{Section: SectionCommitted, Row: row - 1}, true
		}
		return Position{}, false

	case Pending:
		if idx.Value < 0 {
			return Position{}, false
		}
		row := l.Pending - idx.Value
		if row > 0 {
			return Position{Section: SectionPending, Row: row - 1}, true
		}
		return Position{}, false

	case ReadAnnotation:
		if l.Read == nil {
			return Position{}, false
		}
		return Position{Section: SectionCommitted, Row: l.Committed - l.Read.Index}, true
	}
	return Position{}, false
}

// Positions resolves a run of logical indices, skipping any that are not
// materialized.
func (l Layout) Positions(indices ...Index) []Position {
	out := make([]Position, 0, len(indices))
	for _, idx := range indices {
		if p, ok := l.Position(idx); ok {
			out = append(out, p)
		}
	}
	return out
}
