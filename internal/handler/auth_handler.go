package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jaeyeonyy/moacc/internal/command"
	"github.com/jaeyeonyy/moacc/internal/middleware"
)

// AuthCommander defines the operations used by AuthHandler.
type AuthCommander interface {
	Login(ctx context.Context, username, password string) (*command.LoginResult, error)
}

// AuthHandler handles login.
type AuthHandler struct {
	commands AuthCommander
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(commands AuthCommander) *AuthHandler {
	return &AuthHandler{commands: commands}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondBadRequest(c, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "Login succeeded", result)
}
