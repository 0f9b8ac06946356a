package server

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/minaorangina/dreidel/engine"
	"github.com/minaorangina/dreidel/game"
	"github.com/minaorangina/dreidel/protocol"
	"github.com/minaorangina/dreidel/store"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

type ServerOpts struct {
	Store          store.GameStore
	Logger         *logrus.Logger
	Timings        engine.Timings
	Clock          engine.Clock
	AllowedOrigins []string
	// NewGame builds the game behind each new session. Defaults to a game on
	// a freshly generated maze.
	NewGame func() *game.Game
}

// GameServer is a game server
type GameServer struct {
	http.Server

	store     store.GameStore
	log       *logrus.Logger
	logWriter io.WriteCloser
	timings   engine.Timings
	clock     engine.Clock
	newGame   func() *game.Game
	origins   []string
	upgrader  websocket.Upgrader
}

func NewID() string {
	return uuid.NewV4().String()
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:   opts.Store,
		log:     opts.Logger,
		timings: opts.Timings,
		clock:   opts.Clock,
		newGame: opts.NewGame,
		origins: opts.AllowedOrigins,
	}
	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.newGame == nil {
		s.newGame = func() *game.Game { return game.NewGame(game.GameOpts{}) }
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/health", s.HandleHealth)
	router.HandleFunc(http.MethodPost, "/games", s.HandleNewGame)
	router.HandleFunc(http.MethodGet, "/games/:id", s.HandleFindGame)
	router.HandleFunc(http.MethodDelete, "/games/:id", s.HandleDeleteGame)
	router.HandleFunc(http.MethodPost, "/games/:id/start", s.handleIntent(protocol.StartGame, true))
	router.HandleFunc(http.MethodPost, "/games/:id/draw", s.handleIntent(protocol.RequestDraw, false))
	router.HandleFunc(http.MethodPost, "/games/:id/symbol", s.handleIntent(protocol.SubmitSymbol, true))
	router.HandleFunc(http.MethodPost, "/games/:id/move", s.handleIntent(protocol.ChooseDestination, true))
	router.HandleFunc(http.MethodPost, "/games/:id/reset", s.handleIntent(protocol.Reset, false))
	router.HandleFunc(http.MethodGet, "/games/:id/ws", s.HandleWS)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	s.logWriter = s.log.WriterLevel(logrus.InfoLevel)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins(s.origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.LoggingHandler(s.logWriter, h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(s.log), handlers.PrintRecoveryStack(true))(h)

	s.Handler = h

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Close stops the server immediately and releases the request log writer
func (g *GameServer) Close() error {
	err := g.Server.Close()
	g.logWriter.Close()
	return err
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range g.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (g *GameServer) findGame(w http.ResponseWriter, r *http.Request) (*engine.Controller, bool) {
	gameID := way.Param(r.Context(), "id")
	ctrl, ok := g.store.FindGame(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return nil, false
	}
	return ctrl, true
}
