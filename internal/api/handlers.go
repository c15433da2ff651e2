package api

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManadaHerath/hexpath/internal/broker"
	"github.com/ManadaHerath/hexpath/internal/grid"
	"github.com/ManadaHerath/hexpath/internal/session"
	"github.com/ManadaHerath/hexpath/internal/solver"
)

// API holds dependencies for HTTP handlers.
type API struct {
	Sessions *session.Manager
	Broker   broker.Broker
}

// NewAPI creates an API over the given sessions and frame broker.
func NewAPI(sessions *session.Manager, b broker.Broker) *API {
	return &API{Sessions: sessions, Broker: b}
}

// ===== Helper functions =====

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, grid.ErrProtectedCell),
		errors.Is(err, grid.ErrStartIsEnd),
		errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, grid.ErrDimensions),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, grid.ErrUnknownColor),
		errors.Is(err, solver.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case solver.IsClientError(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (api *API) session(c *gin.Context) (*session.Session, bool) {
	s, err := api.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

// ===== Request/response DTOs =====

type CreateSessionResponse struct {
	ID   string        `json:"id"`
	Grid grid.Snapshot `json:"grid"`
}

type GetSessionResponse struct {
	ID    string        `json:"id"`
	Color grid.Color    `json:"color"`
	Grid  grid.Snapshot `json:"grid"`
}

type ResizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// GestureMessage is a gesture sent by a renderer, over the websocket or
// POST /sessions/:id/events.
type GestureMessage struct {
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
	Index int    `json:"index"`
}

var errUnknownGesture = errors.New("unknown gesture")

func (m GestureMessage) Event() (grid.Event, error) {
	switch m.Type {
	case "color":
		color, err := grid.ParseColor(m.Color)
		if err != nil {
			return nil, err
		}
		return grid.SelectColor{Color: color}, nil
	case "down":
		return grid.MouseDown{Index: m.Index}, nil
	case "over":
		return grid.MouseOver{Index: m.Index}, nil
	case "up":
		return grid.MouseUp{}, nil
	}
	return nil, errUnknownGesture
}

// ===== Handlers =====

// POST /sessions
func (api *API) HandleCreateSession(c *gin.Context) {
	s := api.Sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, CreateSessionResponse{ID: s.ID, Grid: s.Snapshot()})
}

// GET /sessions/:id
func (api *API) HandleGetSession(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, GetSessionResponse{ID: s.ID, Color: s.Color(), Grid: s.Snapshot()})
}

// DELETE /sessions/:id
func (api *API) HandleDeleteSession(c *gin.Context) {
	if err := api.Sessions.Remove(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /sessions/:id/dimensions
func (api *API) HandleResize(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := s.Resize(c.Request.Context(), req.Width, req.Height); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// POST /sessions/:id/events
func (api *API) HandleEvent(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	var msg GestureMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	ev, err := msg.Event()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Handle(c.Request.Context(), ev); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// POST /sessions/:id/sync
func (api *API) HandleSync(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	if err := s.Sync(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /sessions/:id/clear
func (api *API) HandleClear(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	if err := s.Clear(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// POST /sessions/:id/randomize
func (api *API) HandleRandomize(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := s.Randomize(c.Request.Context(), rng); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// POST /sessions/:id/clear-trace
func (api *API) HandleClearTrace(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	if err := s.ClearTrace(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// POST /sessions/:id/stop
func (api *API) HandleStop(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	s.Stop()
	c.Status(http.StatusNoContent)
}

// POST /sessions/:id/solve/:algorithm
func (api *API) HandleSolve(c *gin.Context) {
	s, ok := api.session(c)
	if !ok {
		return
	}
	algo, err := solver.ParseAlgorithm(c.Param("algorithm"))
	if err != nil {
		writeError(c, err)
		return
	}
	summary, err := s.Solve(c.Request.Context(), algo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RegisterRoutes mounts the session routes on r.
func (api *API) RegisterRoutes(r gin.IRouter) {
	r.POST("/sessions", api.HandleCreateSession)

	g := r.Group("/sessions/:id")
	g.GET("", api.HandleGetSession)
	g.DELETE("", api.HandleDeleteSession)
	g.PUT("/dimensions", api.HandleResize)
	g.POST("/events", api.HandleEvent)
	g.POST("/sync", api.HandleSync)
	g.POST("/clear", api.HandleClear)
	g.POST("/randomize", api.HandleRandomize)
	g.POST("/clear-trace", api.HandleClearTrace)
	g.POST("/stop", api.HandleStop)
	g.POST("/solve/:algorithm", api.HandleSolve)
	g.GET("/ws", api.HandleSessionWS)
}
