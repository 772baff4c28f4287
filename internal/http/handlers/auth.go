package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cen-na/contrats-backend/internal/http/response"
	"github.com/cen-na/contrats-backend/internal/pkg/ctxutil"
	"github.com/cen-na/contrats-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GET /auth/login
//
// Hands the frontend the Microsoft identity authorize URL. The state
// value round-trips through the provider and is echoed back on the
// callback.
func (ah *AuthHandler) Login(c *gin.Context) {
	state := uuid.New().String()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	response.RespondOK(c, gin.H{"auth_url": ah.authService.AuthURL(state)})
}

// GET /auth/callback?code=...&state=...
func (ah *AuthHandler) Callback(c *gin.Context) {
	wantState, err := c.Cookie("oauth_state")
	if err != nil || wantState == "" || c.Query("state") != wantState {
		response.RespondError(c, http.StatusUnauthorized, "state_mismatch",
			errStateMismatch)
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	token, session, err := ah.authService.HandleCallback(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	c.SetCookie("session_token", token, int(ah.authService.SessionTTL().Seconds()), "/", "", false, true)
	response.RespondOK(c, gin.H{
		"token":   token,
		"session": session,
	})
}

// GET /me
func (ah *AuthHandler) Me(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errNoSession)
		return
	}
	response.RespondOK(c, gin.H{
		"user_id": rd.UserID,
		"name":    rd.UserName,
		"email":   rd.UserEmail,
	})
}

// POST /auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("session_token", "", -1, "/", "", false, true)
	response.RespondOK(c, gin.H{"ok": true})
}
