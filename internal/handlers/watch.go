package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/minelogic/minesweeper-agent/internal/board"
	"github.com/minelogic/minesweeper-agent/internal/player"
)

type watchFrame struct {
	Move    player.Move `json:"move"`
	Outcome string      `json:"outcome"`
	Safes   int         `json:"safes"`
	Mines   int         `json:"mines"`
	Pending int         `json:"pending_sentences"`
}

/*
Watch plays a fresh game over a websocket, one frame per move, so a
client can follow the deductions as they land. The connection closes
after the final frame.
*/
func (h EpisodeHandler) Watch(w http.ResponseWriter, r *http.Request) {
	params, err := ParseBoardParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	b, err := board.New(params, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	p, err := player.New(b, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create player", "error", err)
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "error", err)
		return
	}
	defer c.Close()

	for {
		move, outcome, err := p.Step()
		if err != nil {
			h.logger.Error("episode aborted mid-watch", "error", err)
			return
		}
		agent := p.Agent()
		frame := watchFrame{
			Move:    move,
			Outcome: outcome.String(),
			Safes:   len(agent.Safes()),
			Mines:   len(agent.Mines()),
			Pending: agent.SentenceCount(),
		}
		if err := c.WriteJSON(frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("write failed", "error", err)
			}
			return
		}
		if outcome != player.Playing {
			return
		}
	}
}
