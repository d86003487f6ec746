package handlers

import (
	"github.com/gorilla/schema"

	"github.com/minelogic/minesweeper-agent/internal/board"
	"github.com/minelogic/minesweeper-agent/internal/player"
	"github.com/minelogic/minesweeper-agent/internal/repository"
)

func ParseBoardParams(src map[string][]string) (board.Params, error) {
	var params board.Params
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&params, src)
	if err != nil {
		return params, err
	}
	return params, params.Validate()
}

type EpisodeDTO struct {
	EpisodeId string        `json:"episode_id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	MineCount int           `json:"mine_count"`
	Outcome   string        `json:"outcome"`
	MoveCount int           `json:"move_count"`
	Guesses   int           `json:"guesses"`
	Moves     []player.Move `json:"moves,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

func NewEpisodeDTO(e *repository.Episode, moves []player.Move) *EpisodeDTO {
	return &EpisodeDTO{
		EpisodeId: e.PublicId.String(),
		Width:     e.Width,
		Height:    e.Height,
		MineCount: e.MineCount,
		Outcome:   e.Outcome,
		MoveCount: e.MoveCount,
		Guesses:   e.Guesses,
		Moves:     moves,
		CreatedAt: e.CreatedAt.Time.UnixMilli(),
	}
}
