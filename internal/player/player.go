package player

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/deque"

	"github.com/minelogic/minesweeper-agent/internal/board"
	"github.com/minelogic/minesweeper-agent/internal/knowledge"
)

var Log *slog.Logger = slog.Default()

type Outcome int8

const (
	Playing Outcome = iota
	Won
	Lost
	Stalled
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Stalled:
		return "stalled"
	default:
		return "!"
	}
}

type Move struct {
	Cell  knowledge.Cell `json:"cell"`
	Count int            `json:"count"`
	Guess bool           `json:"guess"`
	Mine  bool           `json:"mine"`
}

/*
A Player drives one game to completion: it owns the board and the
knowledge base, feeds every observation into the agent, and flags the
mines the agent proves. Known-safe cells go onto a probe queue so the
play order radiates out from resolved regions instead of rescanning the
whole grid each turn.
*/
type Player struct {
	board   *board.Board
	agent   *knowledge.Agent
	probes  deque.Deque[knowledge.Cell]
	queued  knowledge.CellSet
	moves   []Move
	outcome Outcome
}

func New(b *board.Board, r *rand.Rand) (*Player, error) {
	agent, err := knowledge.NewAgent(b.Width, b.Height, r)
	if err != nil {
		return nil, err
	}
	return &Player{
		board:  b,
		agent:  agent,
		queued: make(knowledge.CellSet),
	}, nil
}

func (p *Player) Outcome() Outcome { return p.outcome }

func (p *Player) Moves() []Move { return p.moves }

func (p *Player) Agent() *knowledge.Agent { return p.agent }

func (p *Player) Board() *board.Board { return p.board }

// nextMove prefers a queued safe probe, then any proven-safe cell, and
// only then a uniform guess among cells of unknown status.
func (p *Player) nextMove() (cell knowledge.Cell, guess, ok bool) {
	moved := p.agent.MovesMade()
	for p.probes.Len() > 0 {
		cell = p.probes.PopFront()
		if !moved.Has(cell) {
			return cell, false, true
		}
	}
	if cell, ok = p.agent.SafeMove(); ok {
		return cell, false, true
	}
	cell, ok = p.agent.RandomMove()
	return cell, true, ok
}

/*
Step plays one move. It returns the move made and the outcome after it;
callers stop once the outcome is not [Playing]. Guessing into a mine
loses; flagging the full mine set wins; running out of eligible cells
without covering the mine set stalls.
*/
func (p *Player) Step() (Move, Outcome, error) {
	if p.outcome != Playing {
		return Move{}, p.outcome, fmt.Errorf("game is already %s", p.outcome)
	}

	cell, guess, ok := p.nextMove()
	if !ok {
		p.outcome = Stalled
		return Move{}, p.outcome, nil
	}

	move := Move{Cell: cell, Guess: guess}
	if p.board.IsMine(cell) {
		move.Mine = true
		p.moves = append(p.moves, move)
		p.outcome = Lost
		Log.Debug("stepped on a mine", "cell", cell)
		return move, p.outcome, nil
	}

	move.Count = p.board.NearbyMines(cell)
	if err := p.agent.AddKnowledge(cell, move.Count); err != nil {
		return Move{}, p.outcome, fmt.Errorf("bad observation: %w", err)
	}
	p.moves = append(p.moves, move)

	for c := range p.agent.Safes() {
		if !p.queued.Has(c) {
			p.queued.Add(c)
			p.probes.PushBack(c)
		}
	}
	for c := range p.agent.Mines() {
		p.board.Flag(c)
	}

	if p.board.Won() {
		p.outcome = Won
	}
	return move, p.outcome, nil
}

// Play runs [Player.Step] until the game resolves. Bounded by the cell
// count: every step probes a fresh cell or ends the game.
func (p *Player) Play() (Outcome, error) {
	for range p.board.CellCount() + 1 {
		if _, outcome, err := p.Step(); err != nil {
			return outcome, err
		} else if outcome != Playing {
			Log.Debug("game over",
				"outcome", outcome, "moves", len(p.moves))
			return outcome, nil
		}
	}
	return Playing, fmt.Errorf("game failed to resolve in %d moves",
		p.board.CellCount()+1)
}
