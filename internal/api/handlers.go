package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/smartlawyer/internal/attachment"
	"github.com/JustJay7/smartlawyer/internal/auth"
	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/preferences"
	"github.com/JustJay7/smartlawyer/internal/repository"
	"github.com/JustJay7/smartlawyer/internal/validation"
	"github.com/JustJay7/smartlawyer/internal/watch"
	"github.com/JustJay7/smartlawyer/pkg/logger"
)

var errNotFound = errors.New("not found")

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Clients     *repository.ClientRepository
	Cases       *repository.CaseRepository
	Preferences *preferences.Store
	Auth        *auth.Service
	// Identity is optional; without it identity sign-in answers 501.
	Identity    auth.IdentityProvider
	Validator   *validation.Validator
	Attachments *attachment.Store
	Logger      *logger.Logger
}

// Handlers holds all HTTP handlers
type Handlers struct {
	clients     *repository.ClientRepository
	cases       *repository.CaseRepository
	prefs       *preferences.Store
	auth        *auth.Service
	identity    auth.IdentityProvider
	validate    *validation.Validator
	attachments *attachment.Store
	logger      *logger.Logger
}

func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		clients:     d.Clients,
		cases:       d.Cases,
		prefs:       d.Preferences,
		auth:        d.Auth,
		identity:    d.Identity,
		validate:    d.Validator,
		attachments: d.Attachments,
		logger:      d.Logger.With("component", "api"),
	}
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	clients, clientErr := h.clients.GetClientCount(c.Request.Context())
	cases, caseErr := h.cases.GetCaseCount(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": clientErr == nil && caseErr == nil,
		"clients":  clients,
		"cases":    cases,
		"cache":    h.prefs.CacheStats(),
		"time":     time.Now().Unix(),
	})
}

// respondError maps storage and service errors onto status codes. Anything
// unrecognised is logged and hidden behind a generic message.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrDuplicateKey), errors.Is(err, auth.ErrAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, database.ErrForeignKey):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrNoSavedCredentials):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrEmailRequired),
		errors.Is(err, auth.ErrPasswordRequired), errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrNoIdentityEmail), errors.Is(err, preferences.ErrInvalidLanguage):
		status = http.StatusBadRequest
	case errors.Is(err, attachment.ErrUnsupportedURL):
		status = http.StatusBadRequest
	case errors.Is(err, attachment.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   "internal server error",
		})
		return
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *Handlers) respondInvalid(c *gin.Context, res validation.Result) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "validation failed",
		"errors":  res.Errors,
		"fields":  res.Fields,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// snapshot takes the first result of a feed and stops it.
func snapshot[T any](ctx context.Context, open func(context.Context) *watch.Feed[T]) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := open(ctx)
	rows, ok := <-feed.C
	if !ok {
		if err := feed.Err(); err != nil {
			return nil, err
		}
		return nil, ctx.Err()
	}
	return rows, nil
}

// streamFeed relays every snapshot of feed as a server-sent event until the
// client goes away.
func streamFeed[T, R any](c *gin.Context, feed *watch.Feed[T], convert func([]T) []R) {
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		rows, ok := <-feed.C
		if !ok {
			if err := feed.Err(); err != nil {
				c.SSEvent("error", gin.H{"error": "feed stopped"})
			}
			return false
		}
		c.SSEvent("snapshot", convert(rows))
		return true
	})
}
