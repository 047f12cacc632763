package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

// Session keys shared with the router middleware.
const (
	SessionRoleKey    = "role"
	SessionJudgeIDKey = "judgeID"
	RoleAdmin         = "admin"
	RoleJudge         = "judge"
)

type AuthHandler struct {
	log           *zap.Logger
	store         *store.Store
	adminPassword string
}

func NewAuthHandler(log *zap.Logger, st *store.Store, adminPassword string) *AuthHandler {
	return &AuthHandler{log: log, store: st, adminPassword: adminPassword}
}

// AdminLogin authenticates the operator console with the shared secret.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		h.log.Warn("Admin login failed", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionRoleKey, RoleAdmin)
	session.Delete(SessionJudgeIDKey)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": RoleAdmin})
}

// JudgeLogin authenticates a judge by id and secret; disabled judges are
// rejected without revealing whether the secret matched.
func (h *AuthHandler) JudgeLogin(c *gin.Context) {
	var req struct {
		JudgeID  string `json:"judgeId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	judge, err := h.store.AuthenticateJudge(req.JudgeID, req.Password)
	if err != nil {
		h.log.Warn("Judge login failed",
			zap.String("judgeID", req.JudgeID),
			zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionRoleKey, RoleJudge)
	session.Set(SessionJudgeIDKey, judge.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": RoleJudge, "judge": judge.Public()})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to logout"})
		return
	}
	c.Status(http.StatusOK)
}
