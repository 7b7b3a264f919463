package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// RepairFilter selects repair requests by a single dimension. Exactly one
// dimension is honored per call, picked by fixed precedence: PropertyID
// first, else Status, else Priority, else a full scan.
type RepairFilter struct {
	PropertyID string
	Status     models.RepairStatus
	Priority   models.RepairPriority
}

// StatusCheck is invoked inside a repair mutation's transaction with the
// row's current status, after the row is locked and before it is patched.
// Returning an error aborts the transaction and surfaces the error to the
// caller unchanged.
type StatusCheck func(current models.RepairStatus) error

// RepairRepository defines the interface for repair request and audit log
// data access. Every mutation writes the request patch and its audit entry
// in a single transaction so the two cannot diverge.
type RepairRepository interface {
	// CreateWithLog inserts a repair request together with its creation
	// audit entry.
	CreateWithLog(ctx context.Context, repair *models.RepairRequest, entry *models.RepairUpdate) error

	// FindByID finds a repair request by id.
	// Returns nil, nil if no repair is found (not an error).
	FindByID(ctx context.Context, id string) (*models.RepairRequest, error)

	// UpdateStatusWithLog patches the status of a repair (stamping
	// completedDate when given) and appends the audit entry, all in one
	// transaction. The entry's OldValue is filled from the locked row. The
	// check, if non-nil, runs against the current status before the patch.
	// Returns false, nil if the repair does not exist.
	UpdateStatusWithLog(ctx context.Context, id string, status models.RepairStatus, completedDate *int64, entry *models.RepairUpdate, check StatusCheck) (bool, error)

	// AssignWithLog sets the contractor, assigner, and optional schedule and
	// estimate on a repair, forces its status to assigned, and appends the
	// audit entry, all in one transaction. The check, if non-nil, runs
	// against the current status before the patch.
	// Returns false, nil if the repair does not exist.
	AssignWithLog(ctx context.Context, id, contractorID, assignedBy string, scheduledDate *int64, estimatedCost *float64, entry *models.RepairUpdate, check StatusCheck) (bool, error)

	// List returns repair requests matching the filter, oldest first.
	List(ctx context.Context, filter RepairFilter) ([]models.RepairRequest, error)

	// ListByContractor returns all repairs referencing a contractor.
	ListByContractor(ctx context.Context, contractorID string) ([]models.RepairRequest, error)

	// ListByProperty returns all repairs referencing a property.
	ListByProperty(ctx context.Context, propertyID string) ([]models.RepairRequest, error)

	// ListUpdates returns the audit entries for a repair in insertion order.
	ListUpdates(ctx context.Context, repairID string) ([]models.RepairUpdate, error)
}

// repairRepository is the concrete implementation of RepairRepository.
type repairRepository struct {
	db *database.Database
}

// NewRepairRepository creates a new instance of RepairRepository.
func NewRepairRepository(db *database.Database) RepairRepository {
	return &repairRepository{db: db}
}

const repairColumns = `id, property_id, tenant_id, title, description, category, priority, status,
	reported_by, contractor_id, assigned_by, estimated_cost, actual_cost,
	scheduled_date, completed_date, notes, images, created_at`

func scanRepair(row pgx.Row) (*models.RepairRequest, error) {
	var r models.RepairRequest
	err := row.Scan(
		&r.ID,
		&r.PropertyID,
		&r.TenantID,
		&r.Title,
		&r.Description,
		&r.Category,
		&r.Priority,
		&r.Status,
		&r.ReportedBy,
		&r.ContractorID,
		&r.AssignedBy,
		&r.EstimatedCost,
		&r.ActualCost,
		&r.ScheduledDate,
		&r.CompletedDate,
		&r.Notes,
		&r.Images,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const insertUpdateQuery = `
	INSERT INTO repair_updates (id, repair_request_id, updated_by, update_type, old_value, new_value, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func insertUpdate(ctx context.Context, tx pgx.Tx, entry *models.RepairUpdate) error {
	_, err := tx.Exec(ctx, insertUpdateQuery,
		entry.ID,
		entry.RepairRequestID,
		entry.UpdatedBy,
		entry.UpdateType,
		entry.OldValue,
		entry.NewValue,
		entry.Notes,
		entry.CreatedAt,
	)
	return err
}

func (r *repairRepository) CreateWithLog(ctx context.Context, repair *models.RepairRequest, entry *models.RepairUpdate) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertRepair := `
		INSERT INTO repair_requests (id, property_id, tenant_id, title, description, category, priority,
			status, reported_by, contractor_id, assigned_by, estimated_cost, actual_cost,
			scheduled_date, completed_date, notes, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.Exec(ctx, insertRepair,
		repair.ID,
		repair.PropertyID,
		repair.TenantID,
		repair.Title,
		repair.Description,
		repair.Category,
		repair.Priority,
		repair.Status,
		repair.ReportedBy,
		repair.ContractorID,
		repair.AssignedBy,
		repair.EstimatedCost,
		repair.ActualCost,
		repair.ScheduledDate,
		repair.CompletedDate,
		repair.Notes,
		repair.Images,
		repair.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert repair request %s: %w", repair.ID, err)
	}

	if err := insertUpdate(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to insert repair update for %s: %w", repair.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit repair creation %s: %w", repair.ID, err)
	}
	return nil
}

func (r *repairRepository) FindByID(ctx context.Context, id string) (*models.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE id = $1`

	repair, err := scanRepair(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query repair request %s: %w", id, err)
	}
	return repair, nil
}

// lockStatus reads and locks a repair's current status within a transaction.
// Returns pgx.ErrNoRows if the repair does not exist.
func lockStatus(ctx context.Context, tx pgx.Tx, id string) (models.RepairStatus, error) {
	var status models.RepairStatus
	err := tx.QueryRow(ctx, `SELECT status FROM repair_requests WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	return status, err
}

func (r *repairRepository) UpdateStatusWithLog(ctx context.Context, id string, status models.RepairStatus, completedDate *int64, entry *models.RepairUpdate, check StatusCheck) (bool, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := lockStatus(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock repair request %s: %w", id, err)
	}

	if check != nil {
		if err := check(current); err != nil {
			return true, err
		}
	}

	patch := `
		UPDATE repair_requests
		SET status = $2,
			completed_date = CASE WHEN $3::bigint IS NOT NULL THEN $3 ELSE completed_date END
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, patch, id, status, completedDate); err != nil {
		return true, fmt.Errorf("failed to update status of repair request %s: %w", id, err)
	}

	oldValue := string(current)
	entry.OldValue = &oldValue
	if err := insertUpdate(ctx, tx, entry); err != nil {
		return true, fmt.Errorf("failed to insert repair update for %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return true, fmt.Errorf("failed to commit status update for %s: %w", id, err)
	}
	return true, nil
}

func (r *repairRepository) AssignWithLog(ctx context.Context, id, contractorID, assignedBy string, scheduledDate *int64, estimatedCost *float64, entry *models.RepairUpdate, check StatusCheck) (bool, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := lockStatus(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock repair request %s: %w", id, err)
	}

	if check != nil {
		if err := check(current); err != nil {
			return true, err
		}
	}

	patch := `
		UPDATE repair_requests
		SET contractor_id = $2,
			assigned_by = $3,
			status = $4,
			scheduled_date = $5,
			estimated_cost = $6
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, patch, id, contractorID, assignedBy, models.StatusAssigned, scheduledDate, estimatedCost)
	if err != nil {
		return true, fmt.Errorf("failed to assign contractor on repair request %s: %w", id, err)
	}

	if err := insertUpdate(ctx, tx, entry); err != nil {
		return true, fmt.Errorf("failed to insert repair update for %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return true, fmt.Errorf("failed to commit assignment for %s: %w", id, err)
	}
	return true, nil
}

func (r *repairRepository) List(ctx context.Context, filter RepairFilter) ([]models.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests`
	var args []interface{}

	// Single filter dimension by fixed precedence: property, then status,
	// then priority, then full scan.
	switch {
	case filter.PropertyID != "":
		query += ` WHERE property_id = $1`
		args = append(args, filter.PropertyID)
	case filter.Status != "":
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	case filter.Priority != "":
		query += ` WHERE priority = $1`
		args = append(args, filter.Priority)
	}
	query += ` ORDER BY created_at`

	return r.queryRepairs(ctx, query, args...)
}

func (r *repairRepository) ListByContractor(ctx context.Context, contractorID string) ([]models.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE contractor_id = $1 ORDER BY created_at`
	return r.queryRepairs(ctx, query, contractorID)
}

func (r *repairRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE property_id = $1 ORDER BY created_at`
	return r.queryRepairs(ctx, query, propertyID)
}

func (r *repairRepository) queryRepairs(ctx context.Context, query string, args ...interface{}) ([]models.RepairRequest, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair requests: %w", err)
	}
	defer rows.Close()

	repairs := []models.RepairRequest{}
	for rows.Next() {
		repair, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repair request row: %w", err)
		}
		repairs = append(repairs, *repair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repair request rows: %w", err)
	}
	return repairs, nil
}

func (r *repairRepository) ListUpdates(ctx context.Context, repairID string) ([]models.RepairUpdate, error) {
	query := `
		SELECT id, repair_request_id, updated_by, update_type, old_value, new_value, notes, created_at
		FROM repair_updates
		WHERE repair_request_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Pool.Query(ctx, query, repairID)
	if err != nil {
		return nil, fmt.Errorf("failed to query repair updates for %s: %w", repairID, err)
	}
	defer rows.Close()

	updates := []models.RepairUpdate{}
	for rows.Next() {
		var u models.RepairUpdate
		err := rows.Scan(
			&u.ID,
			&u.RepairRequestID,
			&u.UpdatedBy,
			&u.UpdateType,
			&u.OldValue,
			&u.NewValue,
			&u.Notes,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repair update row: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repair update rows: %w", err)
	}
	return updates, nil
}
