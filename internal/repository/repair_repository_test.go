package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stwalsh4118/propfix/api/internal/config"
	"github.com/stwalsh4118/propfix/api/internal/database"
	"github.com/stwalsh4118/propfix/api/internal/models"
)

// getTestConfig returns database configuration for integration tests.
func getTestConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "propfix"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  2,
		PoolMax:  5,
	}
}

var errTestRejected = errors.New("transition rejected")

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects to the test database and ensures the schema exists.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create database connection: %v", err)
	}
	if err := db.Bootstrap(ctx); err != nil {
		t.Fatalf("Failed to bootstrap schema: %v", err)
	}
	return db
}

// insertTestProperty inserts a property row for repairs to reference.
func insertTestProperty(t *testing.T, db *database.Database) *models.Property {
	t.Helper()

	property := &models.Property{
		ID:         uuid.New().String(),
		Address:    "1 Test St",
		Type:       models.PropertyApartment,
		LandlordID: "test-landlord",
		CreatedAt:  time.Now(),
	}
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO properties (id, address, type, landlord_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		property.ID, property.Address, property.Type, property.LandlordID, property.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to insert test property: %v", err)
	}

	t.Cleanup(func() {
		// Cascades to repair_requests and repair_updates
		db.Pool.Exec(context.Background(), `DELETE FROM properties WHERE id = $1`, property.ID)
	})
	return property
}

func newTestRepair(propertyID string) (*models.RepairRequest, *models.RepairUpdate) {
	now := time.Now()
	repair := &models.RepairRequest{
		ID:          uuid.New().String(),
		PropertyID:  propertyID,
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips constantly",
		Category:    models.CategoryPlumbing,
		Priority:    models.PriorityMedium,
		Status:      models.StatusPending,
		ReportedBy:  models.ReportedByTenant,
		CreatedAt:   now,
	}
	newValue := string(models.StatusPending)
	notes := "Repair request created"
	entry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repair.ID,
		UpdatedBy:       "test-landlord",
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		Notes:           &notes,
		CreatedAt:       now,
	}
	return repair, entry
}

func TestCreateWithLog_InsertsRepairAndAuditEntry(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	property := insertTestProperty(t, db)

	repo := NewRepairRepository(db)
	ctx := context.Background()

	repair, entry := newTestRepair(property.ID)
	if err := repo.CreateWithLog(ctx, repair, entry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}

	found, err := repo.FindByID(ctx, repair.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected repair to be found")
	}
	if found.Status != models.StatusPending {
		t.Errorf("Expected status pending, got %s", found.Status)
	}

	updates, err := repo.ListUpdates(ctx, repair.ID)
	if err != nil {
		t.Fatalf("ListUpdates failed: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(updates))
	}
	if updates[0].UpdateType != models.UpdateStatusChange {
		t.Errorf("Expected status_change entry, got %s", updates[0].UpdateType)
	}
	if updates[0].NewValue == nil || *updates[0].NewValue != "pending" {
		t.Error("Expected audit entry new value to be pending")
	}
}

func TestFindByID_Unknown_ReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepairRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New().String())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found != nil {
		t.Error("Expected nil for unknown id")
	}
}

func TestUpdateStatusWithLog_FillsOldValueAndStampsCompletion(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	property := insertTestProperty(t, db)

	repo := NewRepairRepository(db)
	ctx := context.Background()

	repair, entry := newTestRepair(property.ID)
	if err := repo.CreateWithLog(ctx, repair, entry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}

	completedAt := time.Now().UnixMilli()
	newValue := string(models.StatusCompleted)
	statusEntry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repair.ID,
		UpdatedBy:       "test-landlord",
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		CreatedAt:       time.Now(),
	}
	found, err := repo.UpdateStatusWithLog(ctx, repair.ID, models.StatusCompleted, &completedAt, statusEntry, nil)
	if err != nil {
		t.Fatalf("UpdateStatusWithLog failed: %v", err)
	}
	if !found {
		t.Fatal("Expected repair to be found")
	}

	updated, err := repo.FindByID(ctx, repair.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Expected status completed, got %s", updated.Status)
	}
	if updated.CompletedDate == nil || *updated.CompletedDate != completedAt {
		t.Error("Expected completed date to be stamped")
	}

	updates, err := repo.ListUpdates(ctx, repair.ID)
	if err != nil {
		t.Fatalf("ListUpdates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(updates))
	}
	// Entries come back in insertion order; the second carries the old status
	last := updates[1]
	if last.OldValue == nil || *last.OldValue != "pending" {
		t.Error("Expected audit entry old value to be filled from the locked row")
	}
}

func TestUpdateStatusWithLog_CheckRejectionRollsBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	property := insertTestProperty(t, db)

	repo := NewRepairRepository(db)
	ctx := context.Background()

	repair, entry := newTestRepair(property.ID)
	if err := repo.CreateWithLog(ctx, repair, entry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}

	rejection := errTestRejected
	newValue := string(models.StatusCompleted)
	statusEntry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repair.ID,
		UpdatedBy:       "test-landlord",
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		CreatedAt:       time.Now(),
	}
	found, err := repo.UpdateStatusWithLog(ctx, repair.ID, models.StatusCompleted, nil, statusEntry,
		func(current models.RepairStatus) error {
			if current != models.StatusPending {
				t.Errorf("Expected check to see pending, got %s", current)
			}
			return rejection
		})
	if !found {
		t.Error("Expected repair to be found")
	}
	if err != rejection {
		t.Errorf("Expected check error to surface unchanged, got %v", err)
	}

	// Neither the patch nor the audit entry survives the rollback
	unchanged, err := repo.FindByID(ctx, repair.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if unchanged.Status != models.StatusPending {
		t.Errorf("Expected status to remain pending, got %s", unchanged.Status)
	}
	updates, err := repo.ListUpdates(ctx, repair.ID)
	if err != nil {
		t.Fatalf("ListUpdates failed: %v", err)
	}
	if len(updates) != 1 {
		t.Errorf("Expected only the creation audit entry, got %d", len(updates))
	}
}

func TestAssignWithLog_SetsContractorAndForcesAssigned(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	property := insertTestProperty(t, db)

	repo := NewRepairRepository(db)
	ctx := context.Background()

	repair, entry := newTestRepair(property.ID)
	if err := repo.CreateWithLog(ctx, repair, entry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}

	contractorID := uuid.New().String()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO contractors (id, name, email, phone, specialties, is_active, created_at)
		 VALUES ($1, 'Test Contractor', 'test@example.com', '555-0100', '{plumbing}', true, $2)`,
		contractorID, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert test contractor: %v", err)
	}
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM contractors WHERE id = $1`, contractorID)
	})

	cost := 120.0
	scheduled := time.Now().Add(48 * time.Hour).UnixMilli()
	notes := "Contractor assigned"
	assignEntry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: repair.ID,
		UpdatedBy:       "test-landlord",
		UpdateType:      models.UpdateAssignment,
		NewValue:        &contractorID,
		Notes:           &notes,
		CreatedAt:       time.Now(),
	}
	found, err := repo.AssignWithLog(ctx, repair.ID, contractorID, "test-landlord", &scheduled, &cost, assignEntry, nil)
	if err != nil {
		t.Fatalf("AssignWithLog failed: %v", err)
	}
	if !found {
		t.Fatal("Expected repair to be found")
	}

	updated, err := repo.FindByID(ctx, repair.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if updated.Status != models.StatusAssigned {
		t.Errorf("Expected status assigned, got %s", updated.Status)
	}
	if updated.ContractorID == nil || *updated.ContractorID != contractorID {
		t.Error("Expected contractor id to be set")
	}
	if updated.AssignedBy == nil || *updated.AssignedBy != "test-landlord" {
		t.Error("Expected assigned_by to be set")
	}
	if updated.EstimatedCost == nil || *updated.EstimatedCost != cost {
		t.Error("Expected estimated cost to be set")
	}
}

func TestUpdateStatusWithLog_UnknownRepair(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepairRepository(db)

	newValue := string(models.StatusCancelled)
	entry := &models.RepairUpdate{
		ID:              uuid.New().String(),
		RepairRequestID: uuid.New().String(),
		UpdatedBy:       "test-landlord",
		UpdateType:      models.UpdateStatusChange,
		NewValue:        &newValue,
		CreatedAt:       time.Now(),
	}
	found, err := repo.UpdateStatusWithLog(context.Background(), entry.RepairRequestID, models.StatusCancelled, nil, entry, nil)
	if err != nil {
		t.Fatalf("UpdateStatusWithLog failed: %v", err)
	}
	if found {
		t.Error("Expected repair to not be found")
	}
}

func TestList_FilterPrecedence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	property := insertTestProperty(t, db)

	repo := NewRepairRepository(db)
	ctx := context.Background()

	first, firstEntry := newTestRepair(property.ID)
	if err := repo.CreateWithLog(ctx, first, firstEntry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}
	second, secondEntry := newTestRepair(property.ID)
	second.Priority = models.PriorityEmergency
	if err := repo.CreateWithLog(ctx, second, secondEntry); err != nil {
		t.Fatalf("CreateWithLog failed: %v", err)
	}

	byProperty, err := repo.List(ctx, RepairFilter{PropertyID: property.ID})
	if err != nil {
		t.Fatalf("List by property failed: %v", err)
	}
	if len(byProperty) != 2 {
		t.Errorf("Expected 2 repairs for property, got %d", len(byProperty))
	}

	// Property filter wins over priority when both are set
	both, err := repo.List(ctx, RepairFilter{PropertyID: property.ID, Priority: models.PriorityEmergency})
	if err != nil {
		t.Fatalf("List with both filters failed: %v", err)
	}
	if len(both) != 2 {
		t.Errorf("Expected property filter to take precedence, got %d repairs", len(both))
	}
}
