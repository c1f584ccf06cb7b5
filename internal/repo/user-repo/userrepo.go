package userrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByID(ctx context.Context, fid int64) (*domain.User, error) {
	query := `
        SELECT id, username, display_name, profile_picture_url, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	var user domain.User
	err := repo.db.QueryRow(ctx, query, fid).
		Scan(&user.ID, &user.Username, &user.DisplayName, &user.ProfilePictureURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Create inserts a user keyed by its externally assigned fid.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (id, username, display_name, profile_picture_url)
        VALUES ($1, $2, $3, $4)
        RETURNING id, username, display_name, profile_picture_url, created_at, updated_at
    `
	err := repo.db.QueryRow(ctx, query, user.ID, user.Username, user.DisplayName, user.ProfilePictureURL).
		Scan(&user.ID, &user.Username, &user.DisplayName, &user.ProfilePictureURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
