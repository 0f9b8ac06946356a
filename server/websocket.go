package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/dreidel/engine"
	"github.com/minaorangina/dreidel/protocol"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 8
)

// wsClient is one websocket connection watching a game. Snapshots are
// pushed to it as the game changes; intents it sends go to the game.
type wsClient struct {
	id   string
	conn *websocket.Conn
	ctrl *engine.Controller
	log  *logrus.Entry
	send chan protocol.OutboundMessage
	done chan struct{}
}

// HandleWS upgrades to a websocket connection for a game
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := g.findGame(w, r)
	if !ok {
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("could not upgrade to websocket")
		return
	}

	c := &wsClient{
		id:   NewID(),
		conn: conn,
		ctrl: ctrl,
		send: make(chan protocol.OutboundMessage, sendBufferSize),
		done: make(chan struct{}),
	}
	c.log = g.log.WithFields(logrus.Fields{"game_id": ctrl.ID(), "conn_id": c.id})

	unsubscribe := ctrl.Subscribe(func(s protocol.Snapshot) {
		c.push(stateMessage(s))
	})
	c.push(stateMessage(ctrl.Snapshot()))
	c.log.Info("websocket connected")

	go c.writeLoop()
	go func() {
		c.readLoop()
		unsubscribe()
		close(c.done)
		c.log.Info("websocket disconnected")
	}()
}

func stateMessage(s protocol.Snapshot) protocol.OutboundMessage {
	return protocol.OutboundMessage{Command: protocol.State, State: &s}
}

// push never blocks. A slow client loses the oldest queued messages; the
// newest is always kept.
func (c *wsClient) push(msg protocol.OutboundMessage) {
	for {
		select {
		case c.send <- msg:
			return
		case <-c.done:
			return
		default:
		}

		select {
		case <-c.send:
		default:
		}
	}
}

func (c *wsClient) readLoop() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg protocol.InboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("websocket read failed")
			}
			return
		}

		if err := c.ctrl.Receive(msg); err != nil {
			c.push(protocol.OutboundMessage{Command: protocol.Error, Error: err.Error()})
		}
	}
}

func (c *wsClient) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.WithError(err).Debug("websocket write failed")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
