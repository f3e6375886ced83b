package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/JustJay7/smartlawyer/internal/casetype"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.auth.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c)
}

func (h *Handlers) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c)
}

// BiometricLogin is called by the client once the platform prompt succeeded.
func (h *Handlers) BiometricLogin(c *gin.Context) {
	if _, err := h.auth.BiometricLogin(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c)
}

// IdentityLogin verifies a provider token and starts a session for it.
func (h *Handlers) IdentityLogin(c *gin.Context) {
	if h.identity == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"success": false,
			"error":   "identity sign-in is not configured",
		})
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "token is required")
		return
	}

	id, err := h.identity.Verify(c.Request.Context(), req.Token)
	if err != nil {
		h.logger.Warn("Identity token rejected", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "identity token rejected",
		})
		return
	}

	if err := h.auth.SignInWithIdentity(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c)
}

func (h *Handlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c)
}

func (h *Handlers) SessionStatus(c *gin.Context) {
	h.respondSession(c)
}

func (h *Handlers) respondSession(c *gin.Context) {
	session, err := h.auth.Status(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}

type preferencesResponse struct {
	Language         string `json:"language"`
	BiometricEnabled bool   `json:"biometricEnabled"`
	RememberMe       bool   `json:"rememberMe"`
}

func (h *Handlers) GetPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	lang, err := h.prefs.Language(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	biometric, err := h.prefs.IsBiometricEnabled(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	remember, err := h.prefs.IsRememberMe(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": preferencesResponse{
			Language:         lang,
			BiometricEnabled: biometric,
			RememberMe:       remember,
		},
	})
}

// UpdatePreferences changes only the fields present in the body.
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var req struct {
		Language         *string `json:"language"`
		BiometricEnabled *bool   `json:"biometricEnabled"`
		RememberMe       *bool   `json:"rememberMe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	if req.Language != nil {
		if err := h.prefs.SetLanguage(ctx, *req.Language); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.BiometricEnabled != nil {
		if err := h.prefs.SetBiometricEnabled(ctx, *req.BiometricEnabled); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.RememberMe != nil {
		if err := h.prefs.SetRememberMe(ctx, *req.RememberMe); err != nil {
			h.respondError(c, err)
			return
		}
	}

	h.GetPreferences(c)
}

// ListCaseTypes labels the case types in ?lang=, falling back to the stored
// language preference.
func (h *Handlers) ListCaseTypes(c *gin.Context) {
	lang, err := h.preferredLanguage(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tag, err := language.Parse(lang)
	if err != nil {
		badRequest(c, "invalid language")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    casetype.Options(tag),
	})
}

// preferredLanguage is ?lang= when given, otherwise the stored preference.
func (h *Handlers) preferredLanguage(c *gin.Context) (string, error) {
	if lang := c.Query("lang"); lang != "" {
		return lang, nil
	}
	return h.prefs.Language(c.Request.Context())
}

// formLanguage picks the language for validation messages. Unreadable
// preferences fall back to the validator's default.
func (h *Handlers) formLanguage(c *gin.Context) language.Tag {
	lang, err := h.preferredLanguage(c)
	if err != nil {
		h.logger.Warn("Failed to read language preference", "error", err)
		return language.Und
	}
	return language.Make(lang)
}
