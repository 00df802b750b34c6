package repository

import (
	"context"

	"github.com/fitlyapps/fitly-api/internal/models"
)

type ClientProfileRepository struct {
	db DBTX
}

func NewClientProfileRepository(db DBTX) *ClientProfileRepository {
	return &ClientProfileRepository{db: db}
}

func (r *ClientProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO client_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *ClientProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	query := `
		SELECT id, user_id, goals, created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`
	var profile models.ClientProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Goals,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ClientProfileRepository) UpdateGoals(ctx context.Context, userID int64, goals []string) (*models.ClientProfile, error) {
	query := `
		UPDATE client_profiles
		SET goals = $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING id, user_id, goals, created_at, updated_at
	`
	var profile models.ClientProfile
	err := r.db.QueryRow(ctx, query, goals, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Goals,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
