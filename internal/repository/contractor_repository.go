package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// ContractorRepository defines the interface for contractor data access operations.
type ContractorRepository interface {
	// Insert stores a new contractor.
	Insert(ctx context.Context, contractor *models.Contractor) error

	// FindByID finds a contractor by id.
	// Returns nil, nil if no contractor is found (not an error).
	FindByID(ctx context.Context, id string) (*models.Contractor, error)

	// List returns contractors, optionally filtered by the is_active flag.
	// A nil isActive returns all contractors. Specialty filtering is done by
	// callers against the returned set.
	List(ctx context.Context, isActive *bool) ([]models.Contractor, error)

	// Patch applies the non-nil fields of the patch to a contractor.
	// Returns false, nil if the contractor does not exist.
	Patch(ctx context.Context, id string, patch models.ContractorPatch) (bool, error)
}

// contractorRepository is the concrete implementation of ContractorRepository.
type contractorRepository struct {
	db *database.Database
}

// NewContractorRepository creates a new instance of ContractorRepository.
func NewContractorRepository(db *database.Database) ContractorRepository {
	return &contractorRepository{db: db}
}

const contractorColumns = `id, name, email, phone, specialties, rating, hourly_rate, is_active, created_at`

func scanContractor(row pgx.Row) (*models.Contractor, error) {
	var c models.Contractor
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Specialties,
		&c.Rating,
		&c.HourlyRate,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contractorRepository) Insert(ctx context.Context, contractor *models.Contractor) error {
	query := `
		INSERT INTO contractors (id, name, email, phone, specialties, rating, hourly_rate, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		contractor.ID,
		contractor.Name,
		contractor.Email,
		contractor.Phone,
		contractor.Specialties,
		contractor.Rating,
		contractor.HourlyRate,
		contractor.IsActive,
		contractor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contractor %s: %w", contractor.ID, err)
	}
	return nil
}

func (r *contractorRepository) FindByID(ctx context.Context, id string) (*models.Contractor, error) {
	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`

	contractor, err := scanContractor(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query contractor %s: %w", id, err)
	}
	return contractor, nil
}

func (r *contractorRepository) List(ctx context.Context, isActive *bool) ([]models.Contractor, error) {
	query := `SELECT ` + contractorColumns + ` FROM contractors`
	var args []interface{}
	if isActive != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *isActive)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}
	defer rows.Close()

	contractors := []models.Contractor{}
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contractor row: %w", err)
		}
		contractors = append(contractors, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contractor rows: %w", err)
	}
	return contractors, nil
}

func (r *contractorRepository) Patch(ctx context.Context, id string, patch models.ContractorPatch) (bool, error) {
	sets := []string{}
	args := []interface{}{id}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.Specialties != nil {
		addSet("specialties", patch.Specialties)
	}
	if patch.HourlyRate != nil {
		addSet("hourly_rate", *patch.HourlyRate)
	}
	if patch.IsActive != nil {
		addSet("is_active", *patch.IsActive)
	}

	if len(sets) == 0 {
		// Nothing to change; existence check only
		contractor, err := r.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		return contractor != nil, nil
	}

	query := `UPDATE contractors SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to patch contractor %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
