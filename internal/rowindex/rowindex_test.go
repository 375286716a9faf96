package rowindex

import (
	"testing"
	"time"
)

var readDate = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func committed(row int) Position { return Position{Section: SectionCommitted, Row: row} }
func pending(row int) Position   { return Position{Section: SectionPending, Row: row} }

func TestLogical_WithReadMarker(t *testing.T) {
	l := Layout{Committed: 5, Read: &ReadInfo{Index: 2, Date: readDate}}

	expected := []Index{
		NormalIndex(4),
		NormalIndex(3),
		NormalIndex(2),
		ReadIndex(readDate),
		NormalIndex(1),
		NormalIndex(0),
	}

	if got := l.RowCount(SectionCommitted); got != len(expected) {
		t.Fatalf("RowCount(committed) = %d, want %d", got, len(expected))
	}

	annotations := 0
	for row, want := range expected {
		got := l.Logical(committed(row))
		if !got.Equal(want) {
			t.Errorf("Logical(row %d) = %v, want %v", row, got, want)
		}
		if got.Kind == ReadAnnotation {
			annotations++
		}
	}
	if annotations != 1 {
		t.Errorf("found %d annotation rows, want exactly 1", annotations)
	}
}

func TestLogical_WithoutReadMarker(t *testing.T) {
	l := Layout{Committed: 3, Pending: 2}

	tests := []struct {
		pos  Position
		want Index
	}{
		{committed(0), NormalIndex(2)},
		{committed(1), NormalIndex(1)},
		{committed(2), NormalIndex(0)},
		{pending(0), PendingIndex(1)},
		{pending(1), PendingIndex(0)},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := l.Logical(tt.pos); !got.Equal(tt.want) {
				t.Errorf("Logical(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestPosition_NotMaterialized(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		idx    Index
	}{
		{"read without marker", Layout{Committed: 3}, ReadIndex(readDate)},
		{"normal past end", Layout{Committed: 3}, NormalIndex(3)},
		{"normal past end with marker", Layout{Committed: 3, Read: &ReadInfo{Index: 1}}, NormalIndex(3)},
		{"negative normal", Layout{Committed: 3}, NormalIndex(-1)},
		{"pending past end", Layout{Pending: 2}, PendingIndex(2)},
		{"negative pending", Layout{Pending: 2}, PendingIndex(-1)},
		{"empty normal", Layout{}, NormalIndex(0)},
		{"empty pending", Layout{}, PendingIndex(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := tt.layout.Position(tt.idx); ok {
				t.Errorf("Position(%v) = %v, want not present", tt.idx, p)
			}
		})
	}
}

func TestEmptyLayout_NothingResolves(t *testing.T) {
	l := Layout{}
	for i := 0; i < 4; i++ {
		if _, ok := l.Position(NormalIndex(i)); ok {
			t.Errorf("Position(normal %d) resolved on empty layout", i)
		}
		if _, ok := l.Position(PendingIndex(i)); ok {
			t.Errorf("Position(pending %d) resolved on empty layout", i)
		}
	}
	if _, ok := l.Position(ReadIndex(readDate)); ok {
		t.Error("Position(read) resolved on empty layout")
	}
	if l.RowCount(SectionCommitted) != 0 || l.RowCount(SectionPending) != 0 {
		t.Error("empty layout reports rows")
	}
}

// layouts enumerates small layouts, with and without a read marker at every
// valid committed index.
func layouts(maxCommitted, maxPending int) []Layout {
	var out []Layout
	for c := 0; c <= maxCommitted; c++ {
		for p := 0; p <= maxPending; p++ {
			out = append(out, Layout{Committed: c, Pending: p})
			for r := 0; r < c; r++ {
				out = append(out, Layout{Committed: c, Pending: p, Read: &ReadInfo{Index: r, Date: readDate}})
			}
		}
	}
	return out
}

func TestRoundTrip_PositionsInRange(t *testing.T) {
	for _, l := range layouts(7, 4) {
		for _, s := range []Section{SectionCommitted, SectionPending} {
			for row := 0; row < l.RowCount(s); row++ {
				p := Position{Section: s, Row: row}
				idx := l.Logical(p)
				back, ok := l.Position(idx)
				if !ok {
					t.Fatalf("layout %+v: Position(Logical(%v) = %v) not present", l, p, idx)
				}
				if back != p {
					t.Fatalf("layout %+v: Position(Logical(%v)) = %v", l, p, back)
				}
			}
		}
	}
}

func TestRoundTrip_MaterializedIndices(t *testing.T) {
	for _, l := range layouts(7, 4) {
		var indices []Index
		for i := 0; i < l.Committed; i++ {
			indices = append(indices, NormalIndex(i))
		}
		for i := 0; i < l.Pending; i++ {
			indices = append(indices, PendingIndex(i))
		}
		if l.Read != nil {
			indices = append(indices, ReadIndex(l.Read.Date))
		}

		seen := map[Position]bool{}
		for _, idx := range indices {
			p, ok := l.Position(idx)
			if !ok {
				t.Fatalf("layout %+v: %v not materialized", l, idx)
			}
			if !l.InRange(p) {
				t.Fatalf("layout %+v: %v resolved out of range to %v", l, idx, p)
			}
			if seen[p] {
				t.Fatalf("layout %+v: two indices share %v", l, p)
			}
			seen[p] = true
			if got := l.Logical(p); !got.Equal(idx) {
				t.Fatalf("layout %+v: Logical(Position(%v)) = %v", l, idx, got)
			}
		}
	}
}

func TestPrependKeepsExistingRows(t *testing.T) {
	// Two newer messages arrive while the marker sits on index 1. Every old
	// message keeps its physical row; only its logical index grows by two.
	before := Layout{Committed: 3, Read: &ReadInfo{Index: 1, Date: readDate}}
	after := Layout{Committed: 5, Read: &ReadInfo{Index: 3, Date: readDate}}

	for i := 0; i < before.Committed; i++ {
		oldPos, ok := before.Position(NormalIndex(i))
		if !ok {
			t.Fatalf("before: normal %d not materialized", i)
		}
		newPos, ok := after.Position(NormalIndex(i + 2))
		if !ok {
			t.Fatalf("after: normal %d not materialized", i+2)
		}
		if oldPos != newPos {
			t.Errorf("normal %d moved from %v to %v", i, oldPos, newPos)
		}
	}

	oldRead, _ := before.Position(ReadIndex(readDate))
	newRead, _ := after.Position(ReadIndex(readDate))
	if oldRead != newRead {
		t.Errorf("read row moved from %v to %v", oldRead, newRead)
	}

	// The new messages occupy the two bottom rows.
	for i, want := range []int{5, 4} {
		p, _ := after.Position(NormalIndex(i))
		if p.Row != want {
			t.Errorf("new normal %d at row %d, want %d", i, p.Row, want)
		}
	}
}

func TestPositions_SkipsMissing(t *testing.T) {
	l := Layout{Committed: 2}
	got := l.Positions(NormalIndex(0), NormalIndex(5), NormalIndex(1))
	want := []Position{committed(1), committed(0)}
	if len(got) != len(want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInRange(t *testing.T) {
	l := Layout{Committed: 2, Pending: 1, Read: &ReadInfo{Index: 0}}
	tests := []struct {
		pos  Position
		want bool
	}{
		{committed(0), true},
		{committed(2), true},
		{committed(3), false},
		{committed(-1), false},
		{pending(0), true},
		{pending(1), false},
		{Position{Section: 7}, false},
	}
	for _, tt := range tests {
		if got := l.InRange(tt.pos); got != tt.want {
			t.Errorf("InRange(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
