package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/watch"
)

func (h *Handlers) caseFeed(c *gin.Context) func(context.Context) *watch.Feed[database.Case] {
	query := c.Query("q")
	return func(ctx context.Context) *watch.Feed[database.Case] {
		if query == "" {
			return h.cases.GetAllCases(ctx)
		}
		return h.cases.SearchCases(ctx, query)
	}
}

// ListCases returns all cases, newest registration first, or those whose
// number or subject contains ?q=.
func (h *Handlers) ListCases(c *gin.Context) {
	cases, err := snapshot(c.Request.Context(), h.caseFeed(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newCaseResponses(cases),
	})
}

// WatchCases streams the case list as server-sent events.
func (h *Handlers) WatchCases(c *gin.Context) {
	feed := h.caseFeed(c)(c.Request.Context())
	streamFeed(c, feed, newCaseResponses)
}

func (h *Handlers) CountCases(c *gin.Context) {
	count, err := h.cases.GetCaseCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}

func (h *Handlers) loadCase(c *gin.Context) (*database.Case, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	found, err := h.cases.GetCaseByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if found == nil {
		h.respondError(c, errNotFound)
		return nil, false
	}
	return found, true
}

func (h *Handlers) GetCase(c *gin.Context) {
	found, ok := h.loadCase(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newCaseResponse(found),
	})
}

func (h *Handlers) CreateCase(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	kase := req.toModel(0)
	if res := h.validate.Case(kase, h.formLanguage(c)); !res.Valid {
		h.respondInvalid(c, res)
		return
	}

	if _, err := h.cases.InsertCase(c.Request.Context(), kase); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Case created", "caseID", kase.ID, "clientID", kase.ClientID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newCaseResponse(kase),
	})
}

// ImportCases inserts a batch in one transaction. Rows carrying an existing
// id replace that case.
func (h *Handlers) ImportCases(c *gin.Context) {
	var req struct {
		Cases []caseRequest `json:"cases" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "cases are required")
		return
	}

	batch := make([]database.Case, len(req.Cases))
	for i, r := range req.Cases {
		kase := r.toModel(r.ID)
		if res := h.validate.Case(kase, h.formLanguage(c)); !res.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("case %d failed validation", i),
				"index":   i,
				"errors":  res.Errors,
				"fields":  res.Fields,
			})
			return
		}
		batch[i] = *kase
	}

	ids, err := h.cases.InsertCases(c.Request.Context(), batch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Cases imported", "count", len(ids))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"ids":     ids,
	})
}

// UpdateCase replaces every column of the case.
func (h *Handlers) UpdateCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	kase := req.toModel(id)
	if res := h.validate.Case(kase, h.formLanguage(c)); !res.Valid {
		h.respondInvalid(c, res)
		return
	}

	rows, err := h.cases.UpdateCase(c.Request.Context(), kase)
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
		"data":    newCaseResponse(kase),
	})
}

func (h *Handlers) DeleteCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rows, err := h.cases.DeleteCase(c.Request.Context(), &database.Case{ID: id})
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
		"deleted": rows,
	})
}

// DeleteCases removes every listed id in one transaction. Unknown ids are
// skipped and not counted.
func (h *Handlers) DeleteCases(c *gin.Context) {
	var req struct {
		IDs []int64 `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ids are required")
		return
	}

	batch := make([]database.Case, len(req.IDs))
	for i, id := range req.IDs {
		batch[i] = database.Case{ID: id}
	}

	rows, err := h.cases.DeleteCases(c.Request.Context(), batch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": rows,
	})
}

func (h *Handlers) AddCaseAttachment(c *gin.Context) {
	kase, ok := h.loadCase(c)
	if !ok {
		return
	}

	att, ok := h.receiveAttachment(c)
	if !ok {
		return
	}

	attachPath(&kase.Documents, &kase.Images, att)
	if _, err := h.cases.UpdateCase(c.Request.Context(), kase); err != nil {
		h.discardAttachment(att.Path)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"attachment": att,
		"data":       newCaseResponse(kase),
	})
}

func (h *Handlers) RemoveCaseAttachment(c *gin.Context) {
	kase, ok := h.loadCase(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if !detachPath(&kase.Documents, &kase.Images, path) {
		h.respondError(c, errNotFound)
		return
	}

	if _, err := h.cases.UpdateCase(c.Request.Context(), kase); err != nil {
		h.respondError(c, err)
		return
	}
	h.discardAttachment(path)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    newCaseResponse(kase),
	})
}
