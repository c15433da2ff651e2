package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ManadaHerath/hexpath/internal/broker"
	"github.com/ManadaHerath/hexpath/internal/grid"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /sessions/:id/ws
//
// Inbound text messages are GestureMessages. Outbound messages are frames,
// starting with a snapshot of the board.
func (api *API) HandleSessionWS(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	log := logrus.WithField("session", s.ID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	frames, unsubscribe, err := api.Broker.Subscribe(ctx, s.ID)
	if err != nil {
		log.WithError(err).Warn("subscribe failed")
		return
	}
	defer unsubscribe()

	snap := s.Snapshot()
	if err := conn.WriteJSON(broker.Frame{Type: broker.FrameSnapshot, Session: s.ID, Grid: &snap}); err != nil {
		return
	}

	go func() {
		defer cancel()
		for {
			var msg GestureMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.WithError(err).Debug("ws read ended")
				}
				return
			}
			ev, err := msg.Event()
			if err != nil {
				log.WithError(err).WithField("type", msg.Type).Debug("ignoring gesture")
				continue
			}
			// refusals come back to the renderer as notice frames
			if err := s.Handle(ctx, ev); err != nil && !errors.Is(err, grid.ErrProtectedCell) {
				log.WithError(err).Debug("gesture failed")
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(f); err != nil {
				log.WithError(err).Warn("ws write error")
				return
			}
		}
	}
}
