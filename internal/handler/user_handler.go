package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jaeyeonyy/moacc/internal/command"
	"github.com/jaeyeonyy/moacc/internal/middleware"
	"github.com/jaeyeonyy/moacc/internal/models"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	SignUp(ctx context.Context, cmd command.SignUpCommand) (*models.UserView, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ChangeLanguage(ctx context.Context, userID int64, code string) (*models.UserView, error)
	ChangeName(ctx context.Context, userID int64, name string) (*models.UserView, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetUser(ctx context.Context, userID int64) (*models.UserView, error)
}

// UserHandler routes user requests to the command or query service.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type SignUpRequest struct {
	Username     string `json:"username" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Language     string `json:"language" validate:"required,oneof=KO EN JA"`
	Introduction string `json:"introduction"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type LanguageUpdateRequest struct {
	NewLanguage string `json:"newLanguage" validate:"required,oneof=KO EN JA"`
}

type NameUpdateRequest struct {
	NewName string `json:"newName" validate:"required"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondBadRequest(c, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.SignUp(c.Request.Context(), command.SignUpCommand{
		Username:     req.Username,
		Password:     req.Password,
		Name:         req.Name,
		Language:     req.Language,
		Introduction: req.Introduction,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "Sign-up completed", view)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondBadRequest(c, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	if err := h.commands.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "Password changed", nil)
}

func (h *UserHandler) ChangeLanguage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req LanguageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondBadRequest(c, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.ChangeLanguage(c.Request.Context(), userID, req.NewLanguage)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "Language changed", view)
}

func (h *UserHandler) ChangeName(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req NameUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondBadRequest(c, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.ChangeName(c.Request.Context(), userID, req.NewName)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "Name changed", view)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetUser(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondSuccess(c, "User profile retrieved", view)
}
