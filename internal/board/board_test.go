package board

import (
	"math/rand/v2"
	"testing"

	"github.com/minelogic/minesweeper-agent/internal/knowledge"
)

func TestNewBoardPlacesExactMineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "8x8(8)", params: Params{Width: 8, Height: 8, MineCount: 8}},
		{name: "9x9(10)", params: Params{Width: 9, Height: 9, MineCount: 10}},
		{name: "16x16(40)", params: Params{Width: 16, Height: 16, MineCount: 40}},
		{name: "30x16(99)", params: Params{Width: 30, Height: 16, MineCount: 99}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			b, err := New(test.params, r)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(b.Mines()); got != test.params.MineCount {
				t.Errorf("placed %d mines, want %d", got, test.params.MineCount)
			}
			for c := range b.Mines() {
				if !b.InBounds(c) {
					t.Errorf("mine %s out of bounds", c)
				}
			}
		})
	}
}

func TestNewBoardRejectsBadParams(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for _, params := range []Params{
		{Width: 0, Height: 8, MineCount: 1},
		{Width: 8, Height: -1, MineCount: 1},
		{Width: 3, Height: 3, MineCount: 9},
		{Width: 3, Height: 3, MineCount: -1},
	} {
		if _, err := New(params, r); err == nil {
			t.Errorf("New(%+v) should fail", params)
		}
	}
}

func TestNearbyMines(t *testing.T) {
	t.Parallel()

	b := &Board{
		Params: Params{Width: 3, Height: 3, MineCount: 2},
		mines: knowledge.NewCellSet(
			knowledge.Cell{Row: 0, Col: 0},
			knowledge.Cell{Row: 2, Col: 2},
		),
		flagged: make(knowledge.CellSet),
	}

	tests := []struct {
		cell knowledge.Cell
		want int
	}{
		{knowledge.Cell{Row: 1, Col: 1}, 2},
		{knowledge.Cell{Row: 0, Col: 1}, 1},
		{knowledge.Cell{Row: 2, Col: 0}, 0},
		{knowledge.Cell{Row: 0, Col: 0}, 0}, // the cell itself never counts
	}
	for _, test := range tests {
		if got := b.NearbyMines(test.cell); got != test.want {
			t.Errorf("NearbyMines(%s) = %d, want %d", test.cell, got, test.want)
		}
	}
}

func TestWon(t *testing.T) {
	t.Parallel()

	b := &Board{
		Params: Params{Width: 2, Height: 2, MineCount: 1},
		mines: knowledge.NewCellSet(
			knowledge.Cell{Row: 1, Col: 1},
		),
		flagged: make(knowledge.CellSet),
	}

	if b.Won() {
		t.Error("unflagged board cannot be won")
	}
	b.Flag(knowledge.Cell{Row: 1, Col: 1})
	if !b.Won() {
		t.Error("flagging the only mine must win")
	}
}

func TestSeedRoundTrip(t *testing.T) {
	t.Parallel()

	params := Params{Width: 30, Height: 16, MineCount: 99}
	got, err := ParseSeed(params.Seed())
	if err != nil {
		t.Fatal(err)
	}
	if *got != params {
		t.Errorf("ParseSeed(Seed()) = %+v, want %+v", got, params)
	}

	if _, err := ParseSeed("9:9"); err == nil {
		t.Error("short seed should fail to parse")
	}
}
