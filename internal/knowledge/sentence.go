package knowledge

import "fmt"

/*
A Sentence is a logical statement about the grid: of the cells in the
set, exactly `count` are mines. The count is fixed at construction;
membership shrinks as cells are resolved elsewhere and accounted for.

Invariant: 0 <= count <= len(cells). The engine never constructs or
keeps a sentence that violates it; a violation means the caller fed
contradictory observations (or the engine itself is broken) and is
reported by panicking with [AssertionError], to be recovered at the
ingestion boundary.
*/
type Sentence struct {
	cells CellSet
	count int
}

// panics [AssertionError]
func NewSentence(cells CellSet, count int) *Sentence {
	s := &Sentence{cells: cells.Copy(), count: count}
	s.check()
	return s
}

func (s *Sentence) check() {
	if s.count < 0 || s.count > len(s.cells) {
		panic(AssertionError{fmt.Sprintf(
			"contradictory sentence: %d mines among %d cells",
			s.count, len(s.cells),
		)})
	}
}

func (s *Sentence) String() string {
	return fmt.Sprintf("%s = %d", s.cells, s.count)
}

// Equal is value equality: same cell set and same count.
func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Sentence) Empty() bool {
	return len(s.cells) == 0
}

func (s *Sentence) Count() int {
	return s.count
}

func (s *Sentence) Cells() CellSet {
	return s.cells.Copy()
}

/*
KnownMines returns every member cell that is provably a mine: all of
them, exactly when the remaining cells must each be a mine to reach the
count. The returned set is a copy; callers may hold it across later
marks.
*/
func (s *Sentence) KnownMines() CellSet {
	if len(s.cells) > 0 && s.count == len(s.cells) {
		return s.cells.Copy()
	}
	return nil
}

// KnownSafes returns every member cell that is provably safe, i.e. all
// of them when the sentence requires zero mines. Copy semantics as in
// [Sentence.KnownMines].
func (s *Sentence) KnownSafes() CellSet {
	if s.count == 0 {
		return s.cells.Copy()
	}
	return nil
}

/*
MarkMine records the outside fact that cell is a mine. If the cell is a
member it is removed and the count drops by one, since the remaining
cells now have one fewer mine to supply. No-op for non-members.

panics [AssertionError] if the count would go negative
*/
func (s *Sentence) MarkMine(cell Cell) {
	if !s.cells.Has(cell) {
		return
	}
	s.cells.Delete(cell)
	s.count--
	s.check()
}

/*
MarkSafe records the outside fact that cell is safe. A member cell is
removed with the count untouched: a safe cell never contributed to it.
No-op for non-members.

panics [AssertionError] if the count then exceeds the remaining cells
*/
func (s *Sentence) MarkSafe(cell Cell) {
	if !s.cells.Has(cell) {
		return
	}
	s.cells.Delete(cell)
	s.check()
}
