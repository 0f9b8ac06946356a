package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minaorangina/dreidel/engine"
	"github.com/minaorangina/dreidel/protocol"
	"github.com/sirupsen/logrus"
)

type NewGameRes struct {
	GameID string `json:"game_id"`
}

type HealthRes struct {
	OK bool `json:"ok"`
}

// HandleHealth reports that the server is up
func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthRes{OK: true})
}

// HandleNewGame creates a session waiting in setup
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := g.store.NewGameID()
	if err != nil {
		g.log.WithError(err).Error("could not create game")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	ctrl := engine.NewController(engine.ControllerOpts{
		GameID:  gameID,
		Game:    g.newGame(),
		Clock:   g.clock,
		Timings: g.timings,
		Logger:  g.log.WithField("session", NewID()),
	})

	if err := g.store.AddGame(ctrl); err != nil {
		ctrl.Close()
		g.log.WithError(err).Error("could not store game")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	g.log.WithField("game_id", gameID).Info("game created")
	writeJSON(w, http.StatusCreated, NewGameRes{GameID: gameID})
}

// HandleFindGame returns the current snapshot of a game
func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := g.findGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// HandleDeleteGame closes a game and forgets it
func (g *GameServer) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := g.findGame(w, r)
	if !ok {
		return
	}
	if _, err := g.store.RemoveGame(ctrl.ID()); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	ctrl.Close()

	g.log.WithField("game_id", ctrl.ID()).Info("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleIntent passes an intent to a game and responds with the resulting
// snapshot. An intent the game ignores is not a failed request.
func (g *GameServer) handleIntent(cmd protocol.Cmd, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := g.findGame(w, r)
		if !ok {
			return
		}

		var msg protocol.InboundMessage
		if withBody {
			err := json.NewDecoder(r.Body).Decode(&msg)
			defer r.Body.Close()
			if err != nil {
				writeParseError(err, w)
				return
			}
		}
		msg.Command = cmd

		accepted := "true"
		if err := ctrl.Receive(msg); err != nil {
			if !errors.Is(err, engine.ErrIntentIgnored) {
				g.log.WithError(err).WithFields(logrus.Fields{
					"game_id": ctrl.ID(),
					"intent":  cmd,
				}).Error("intent failed")
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			accepted = "false"
		}

		w.Header().Set(intentAcceptedHeader, accepted)
		writeJSON(w, http.StatusOK, ctrl.Snapshot())
	}
}
