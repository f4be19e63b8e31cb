package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/cybercompass/internal/session"
	"github.com/huangsam/cybercompass/schema"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Sessions int    `json:"sessions"`
}

type startRequest struct {
	Path string `json:"path"`
}

type answerRequest struct {
	Choice string `json:"choice" binding:"required"`
}

type reflexRequest struct {
	Action string `json:"action" binding:"required"`
}

// statusFor maps registry errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidChoice),
		errors.Is(err, session.ErrInvalidPath),
		errors.Is(err, session.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrQuizComplete),
		errors.Is(err, session.ErrReflexComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

func (s *Server) fail(c *gin.Context, err error) {
	abort(c, statusFor(err), err)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  s.opts.Version,
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Sessions: s.reg.Len(),
	})
}

func (s *Server) handleListQuestions(c *gin.Context) {
	path := schema.QuizPath(strings.ToLower(c.DefaultQuery("path", string(schema.ExplorerPath))))
	if _, ok := schema.ValidQuizPaths[path]; !ok {
		s.fail(c, fmt.Errorf("%w: %q", session.ErrInvalidPath, path))
		return
	}
	c.JSON(http.StatusOK, s.reg.Questions(path))
}

func (s *Server) handleStartSession(c *gin.Context) {
	var req startRequest
	// An empty body starts an explorer session, chunked or not
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			abort(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	snap, err := s.reg.Start(schema.QuizPath(strings.ToLower(req.Path)))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (s *Server) handleGetSession(c *gin.Context) {
	snap, err := s.reg.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleGetQuestion(c *gin.Context) {
	snap, err := s.reg.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if snap.Question == nil {
		s.fail(c, session.ErrQuizComplete)
		return
	}
	c.JSON(http.StatusOK, snap.Question)
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	res, err := s.reg.Answer(c.Param("id"), req.Choice)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleReflex(c *gin.Context) {
	var req reflexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	res, err := s.reg.Reflex(c.Param("id"), schema.ReflexAction(strings.ToUpper(req.Action)))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleGetDossier(c *gin.Context) {
	d, err := s.reg.Dossier(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleGetGaps(c *gin.Context) {
	gaps, err := s.reg.Gaps(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gaps)
}

func (s *Server) handleEndSession(c *gin.Context) {
	if err := s.reg.End(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
