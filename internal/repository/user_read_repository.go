package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaeyeonyy/moacc/internal/cache"
	"github.com/jaeyeonyy/moacc/internal/models"
)

const userViewKeyPrefix = "user:view:"

// UserReadRepository serves profile reads: Redis first, PostgreSQL on a
// miss. The command services refresh the cached view after every committed
// mutation.
type UserReadRepository struct {
	db    *sql.DB
	cache *cache.ViewCache[models.UserView]
}

func NewUserReadRepository(db *sql.DB, client *redis.Client, ttl time.Duration) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: cache.NewViewCache[models.UserView](client, ttl),
	}
}

// GetByID returns the public view of a user, warming the cache on a miss.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserView, error) {
	key := viewKey(userID)
	if view, ok := r.cache.Get(ctx, key); ok {
		return view, nil
	}

	user, err := NewUserRepository(r.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := models.NewUserView(user)
	r.cache.Set(ctx, key, view)
	return view, nil
}

// CacheView stores or refreshes the cached view for a user.
func (r *UserReadRepository) CacheView(ctx context.Context, view *models.UserView) {
	r.cache.Set(ctx, viewKey(view.UserID), view)
}

func viewKey(userID int64) string {
	return fmt.Sprintf("%s%d", userViewKeyPrefix, userID)
}
