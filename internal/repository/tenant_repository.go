package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// TenantRepository defines the interface for tenant data access operations.
type TenantRepository interface {
	// Insert stores a new tenant.
	Insert(ctx context.Context, tenant *models.Tenant) error

	// FindByID finds a tenant by id.
	// Returns nil, nil if no tenant is found (not an error).
	FindByID(ctx context.Context, id string) (*models.Tenant, error)

	// ListByProperty returns all tenants of a property.
	// Returns an empty slice if there are none (not an error).
	ListByProperty(ctx context.Context, propertyID string) ([]models.Tenant, error)
}

// tenantRepository is the concrete implementation of TenantRepository.
type tenantRepository struct {
	db *database.Database
}

// NewTenantRepository creates a new instance of TenantRepository.
func NewTenantRepository(db *database.Database) TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `id, name, email, phone, property_id, unit, lease_start, lease_end, created_at`

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.Phone,
		&t.PropertyID,
		&t.Unit,
		&t.LeaseStart,
		&t.LeaseEnd,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepository) Insert(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, email, phone, property_id, unit, lease_start, lease_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.PropertyID,
		tenant.Unit,
		tenant.LeaseStart,
		tenant.LeaseEnd,
		tenant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant %s: %w", tenant.ID, err)
	}
	return nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tenant %s: %w", id, err)
	}
	return tenant, nil
}

func (r *tenantRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE property_id = $1 ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}
