package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/watch"
)

func (h *Handlers) clientFeed(c *gin.Context) func(context.Context) *watch.Feed[database.Client] {
	query := c.Query("q")
	return func(ctx context.Context) *watch.Feed[database.Client] {
		if query == "" {
			return h.clients.GetAllClients(ctx)
		}
		return h.clients.SearchClients(ctx, query)
	}
}

// ListClients returns all clients by name, or those whose name or phone
// number contains ?q=.
func (h *Handlers) ListClients(c *gin.Context) {
	clients, err := snapshot(c.Request.Context(), h.clientFeed(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newClientResponses(clients),
	})
}

// WatchClients streams the client list as server-sent events.
func (h *Handlers) WatchClients(c *gin.Context) {
	feed := h.clientFeed(c)(c.Request.Context())
	streamFeed(c, feed, newClientResponses)
}

func (h *Handlers) CountClients(c *gin.Context) {
	count, err := h.clients.GetClientCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}

func (h *Handlers) loadClient(c *gin.Context) (*database.Client, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	client, err := h.clients.GetClientByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if client == nil {
		h.respondError(c, errNotFound)
		return nil, false
	}
	return client, true
}

func (h *Handlers) GetClient(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newClientResponse(client),
	})
}

func (h *Handlers) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	client := req.toModel(0)
	if res := h.validate.Client(client, h.formLanguage(c)); !res.Valid {
		h.respondInvalid(c, res)
		return
	}

	if _, err := h.clients.InsertClient(c.Request.Context(), client); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Client created", "clientID", client.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newClientResponse(client),
	})
}

// UpdateClient replaces every column of the client.
func (h *Handlers) UpdateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	client := req.toModel(id)
	if res := h.validate.Client(client, h.formLanguage(c)); !res.Valid {
		h.respondInvalid(c, res)
		return
	}

	rows, err := h.clients.UpdateClient(c.Request.Context(), client)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if rows == 0 {
		h.respondError(c, errNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newClientResponse(client),
	})
}

// DeleteClient removes the client and, through the cascade, its cases.
func (h *Handlers) DeleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rows, err := h.clients.DeleteClient(c.Request.Context(), &database.Client{ID: id})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if rows == 0 {
		h.respondError(c, errNotFound)
		return
	}

	h.logger.Info("Client deleted", "clientID", id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": rows,
	})
}

// ListClientCases returns the client's cases in insertion order.
func (h *Handlers) ListClientCases(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cases, err := snapshot(c.Request.Context(), func(ctx context.Context) *watch.Feed[database.Case] {
		return h.cases.GetCasesByClientID(ctx, id)
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newCaseResponses(cases),
	})
}

// AddClientAttachment saves an uploaded file and appends its path to the
// client's documents or images.
func (h *Handlers) AddClientAttachment(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	att, ok := h.receiveAttachment(c)
	if !ok {
		return
	}

	attachPath(&client.Documents, &client.Images, att)
	if _, err := h.clients.UpdateClient(c.Request.Context(), client); err != nil {
		h.discardAttachment(att.Path)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"attachment": att,
		"data":       newClientResponse(client),
	})
}

// RemoveClientAttachment drops ?path= from the client's lists and deletes the
// file when it lives in the attachment store.
func (h *Handlers) RemoveClientAttachment(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if !detachPath(&client.Documents, &client.Images, path) {
		h.respondError(c, errNotFound)
		return
	}

	if _, err := h.clients.UpdateClient(c.Request.Context(), client); err != nil {
		h.respondError(c, err)
		return
	}
	h.discardAttachment(path)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newClientResponse(client),
	})
}
