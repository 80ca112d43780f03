// Package query implements the read side over the cached read repository.
package query

import (
	"context"

	"github.com/jaeyeonyy/moacc/internal/models"
)

// UserViewReader is the read-side lookup used by UserQueryService.
type UserViewReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserView, error)
}

// UserQueryService serves profile reads.
type UserQueryService struct {
	views UserViewReader
}

func NewUserQueryService(views UserViewReader) *UserQueryService {
	return &UserQueryService{views: views}
}

// GetUser returns the public view of the given user.
func (s *UserQueryService) GetUser(ctx context.Context, userID int64) (*models.UserView, error) {
	return s.views.GetByID(ctx, userID)
}
