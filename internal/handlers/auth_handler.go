package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/internal/helpers"
	"github.com/nusantaramc/cms/internal/middleware"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func Login(c *gin.Context) {
	cfg := middleware.GetConfig(c)
	if cfg == nil || !cfg.AuthEnabled() || cfg.AdminPasswordHash == "" {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Admin login is not configured.")
		return
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.", err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passErr := helpers.CheckAdminPassword(cfg.AdminPasswordHash, req.Password)
	if !userOK || passErr != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	now := time.Now()
	tokenString, err := helpers.GenerateAdminToken(cfg.JWTSecret, cfg.AdminUsername, now)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.", err)
		return
	}

	helpers.RespondWithSuccess(c, http.StatusOK, "Login successful.", gin.H{
		"token":      tokenString,
		"username":   cfg.AdminUsername,
		"expires_at": now.Add(helpers.AdminTokenTTL),
	})
}
