package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// PropertyRepository defines the interface for property data access operations.
type PropertyRepository interface {
	// Insert stores a new property.
	Insert(ctx context.Context, property *models.Property) error

	// FindByID finds a property by id.
	// Returns nil, nil if no property is found (not an error).
	FindByID(ctx context.Context, id string) (*models.Property, error)

	// ListForUser returns the properties where the user is landlord followed
	// by those where the user is agent. The two result sets are concatenated
	// without deduplication, so a user who is both landlord and agent of the
	// same property sees it twice.
	ListForUser(ctx context.Context, userID string) ([]models.Property, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, address, type, units, landlord_id, agent_id, created_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Address,
		&p.Type,
		&p.Units,
		&p.LandlordID,
		&p.AgentID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Insert(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, address, type, units, landlord_id, agent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		property.ID,
		property.Address,
		property.Type,
		property.Units,
		property.LandlordID,
		property.AgentID,
		property.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert property %s: %w", property.ID, err)
	}
	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %s: %w", id, err)
	}
	return property, nil
}

func (r *propertyRepository) ListForUser(ctx context.Context, userID string) ([]models.Property, error) {
	asLandlord, err := r.listBy(ctx, `landlord_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties by landlord %s: %w", userID, err)
	}

	asAgent, err := r.listBy(ctx, `agent_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties by agent %s: %w", userID, err)
	}

	return append(asLandlord, asAgent...), nil
}

func (r *propertyRepository) listBy(ctx context.Context, column, userID string) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE ` + column + ` = $1 ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	return properties, nil
}
