package knowledge

import "testing"

func TestKnownMines(t *testing.T) {
	t.Parallel()

	a, b, c := Cell{0, 0}, Cell{0, 1}, Cell{1, 1}

	tests := []struct {
		name  string
		cells []Cell
		count int
		want  []Cell
	}{
		{
			name:  "all mines",
			cells: []Cell{a, b, c},
			count: 3,
			want:  []Cell{a, b, c},
		},
		{
			name:  "undetermined",
			cells: []Cell{a, b, c},
			count: 2,
			want:  nil,
		},
		{
			name:  "no mines",
			cells: []Cell{a, b},
			count: 0,
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSentence(NewCellSet(test.cells...), test.count)
			got := s.KnownMines()
			if !got.Equal(NewCellSet(test.want...)) {
				t.Errorf("KnownMines() = %s, want %s",
					got, NewCellSet(test.want...))
			}
		})
	}
}

func TestKnownSafes(t *testing.T) {
	t.Parallel()

	a, b := Cell{2, 3}, Cell{3, 3}

	tests := []struct {
		name  string
		cells []Cell
		count int
		want  []Cell
	}{
		{
			name:  "all safe",
			cells: []Cell{a, b},
			count: 0,
			want:  []Cell{a, b},
		},
		{
			name:  "undetermined",
			cells: []Cell{a, b},
			count: 1,
			want:  nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewSentence(NewCellSet(test.cells...), test.count)
			got := s.KnownSafes()
			if !got.Equal(NewCellSet(test.want...)) {
				t.Errorf("KnownSafes() = %s, want %s",
					got, NewCellSet(test.want...))
			}
		})
	}
}

func TestKnownSetsAreCopies(t *testing.T) {
	t.Parallel()

	s := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 2)
	mines := s.KnownMines()
	mines.Delete(Cell{0, 0})
	if len(s.Cells()) != 2 {
		t.Error("mutating the returned set must not touch the sentence")
	}
}

func TestMarkMine(t *testing.T) {
	t.Parallel()

	a, b := Cell{1, 1}, Cell{1, 2}
	s := NewSentence(NewCellSet(a, b), 1)

	s.MarkMine(a)
	if s.Count() != 0 {
		t.Errorf("count = %d after marking a member mine, want 0", s.Count())
	}
	if s.Cells().Has(a) {
		t.Error("marked cell must leave the sentence")
	}

	want := NewSentence(NewCellSet(b), 0)
	if !s.Equal(want) {
		t.Errorf("sentence = %s, want %s", s, want)
	}
}

func TestMarkSafeKeepsCount(t *testing.T) {
	t.Parallel()

	a, b := Cell{1, 1}, Cell{1, 2}
	s := NewSentence(NewCellSet(a, b), 1)

	s.MarkSafe(a)
	if s.Count() != 1 {
		t.Errorf("count = %d after marking a member safe, want 1", s.Count())
	}
	if s.Cells().Has(a) {
		t.Error("marked cell must leave the sentence")
	}
}

func TestMarkAbsentCellIsNoop(t *testing.T) {
	t.Parallel()

	a, b := Cell{0, 0}, Cell{0, 1}
	outside := Cell{5, 5}

	s := NewSentence(NewCellSet(a, b), 1)
	before := NewSentence(NewCellSet(a, b), 1)

	s.MarkSafe(outside)
	s.MarkMine(outside)
	if !s.Equal(before) {
		t.Errorf("sentence changed to %s after marking an absent cell", s)
	}

	s.MarkMine(outside)
	s.MarkSafe(outside)
	if !s.Equal(before) {
		t.Errorf("sentence changed to %s after marking an absent cell", s)
	}
}

func TestContradictionPanics(t *testing.T) {
	t.Parallel()

	assertPanics := func(name string, f func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("%s: expected AssertionError panic", name)
			} else if _, ok := r.(AssertionError); !ok {
				t.Errorf("%s: panic value = %v, want AssertionError", name, r)
			}
		}()
		f()
	}

	assertPanics("negative count", func() {
		NewSentence(NewCellSet(Cell{0, 0}), -1)
	})
	assertPanics("count above cardinality", func() {
		NewSentence(NewCellSet(Cell{0, 0}), 2)
	})
	assertPanics("safe mark leaves impossible count", func() {
		s := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
		s.MarkSafe(Cell{0, 0})
		s.MarkSafe(Cell{0, 1})
	})
}
