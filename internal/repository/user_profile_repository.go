package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// UserProfileRepository defines the interface for user profile data access.
type UserProfileRepository interface {
	// Upsert stores a profile, replacing the role, company name, and phone
	// if one already exists for the user id.
	Upsert(ctx context.Context, profile *models.UserProfile) error

	// FindByUserID finds a profile by the identity provider's user id.
	// Returns nil, nil if no profile is found (not an error).
	FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}

// userProfileRepository is the concrete implementation of UserProfileRepository.
type userProfileRepository struct {
	db *database.Database
}

// NewUserProfileRepository creates a new instance of UserProfileRepository.
func NewUserProfileRepository(db *database.Database) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, role, company_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET role = EXCLUDED.role,
			company_name = EXCLUDED.company_name,
			phone = EXCLUDED.phone
	`

	_, err := r.db.Pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Role,
		profile.CompanyName,
		profile.Phone,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user profile for %s: %w", profile.UserID, err)
	}
	return nil
}

func (r *userProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, role, company_name, phone, created_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var p models.UserProfile
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Role,
		&p.CompanyName,
		&p.Phone,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user profile for %s: %w", userID, err)
	}
	return &p, nil
}
