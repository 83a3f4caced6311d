package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/pokerclient/game"
)

var restLogger = log.With().Str("logger_name", "rest::server").Logger()

// apiError is the rejection body: {"error": "..."}. The client falls
// back to the HTTP status text when this is absent.
type apiError struct {
	Error string `json:"error"`
}

// Server is the development backend for the poker client: the three
// game endpoints over an in-memory store. Not a production rules
// engine; it implements just enough betting logic to satisfy the
// endpoint contracts.
type Server struct {
	store  *Store
	router *gin.Engine
}

func NewServer(store *Store) *Server {
	s := &Server{store: store}
	r := gin.Default()
	r.POST("/api/game", s.createGame)
	r.GET("/api/game/:gameId", s.fetchGame)
	r.POST("/api/game/:gameId", s.playerAction)
	s.router = r
	return s
}

// Handler exposes the router for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	restLogger.Info().Msgf("Serving game API on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) createGame(c *gin.Context) {
	g := s.store.CreateGame()
	restLogger.Info().Str("game", g.ID).Msg("New game created")
	c.JSON(http.StatusCreated, gin.H{"game": g})
}

func (s *Server) fetchGame(c *gin.Context) {
	gameID := c.Param("gameId")
	modifiedOnly := c.DefaultQuery("modifiedOnly", "true") == "true"

	g, modified, err := s.store.Fetch(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, apiError{Error: err.Error()})
		return
	}
	if modifiedOnly && !modified {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": g, "modified": modified})
}

func (s *Server) playerAction(c *gin.Context) {
	gameID := c.Param("gameId")

	var input game.PlayerInput
	if err := c.BindJSON(&input); err != nil {
		restLogger.Error().Msgf("Failed to parse player action. Error: %v", err)
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusExpectationFailed, apiError{Error: err.Error()})
		return
	}

	g, err := s.store.ApplyAction(gameID, input)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			c.JSON(http.StatusNotFound, apiError{Error: err.Error()})
			return
		}
		restLogger.Info().Str("game", gameID).Msgf("Action rejected: %s", err.Error())
		c.JSON(http.StatusExpectationFailed, apiError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"game": g})
}
