package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the application tables and their secondary
// indexes. Statements are idempotent so the bootstrap can run on every
// startup. repair_updates is append-only; nothing in the application issues
// UPDATE or DELETE against it, and rows cascade only with their repair.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id          TEXT PRIMARY KEY,
		address     TEXT NOT NULL,
		type        TEXT NOT NULL,
		units       INTEGER,
		landlord_id TEXT NOT NULL,
		agent_id    TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_landlord ON properties (landlord_id)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_agent ON properties (agent_id)`,

	`CREATE TABLE IF NOT EXISTS tenants (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL,
		property_id TEXT NOT NULL REFERENCES properties (id),
		unit        TEXT,
		lease_start BIGINT NOT NULL,
		lease_end   BIGINT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_property ON tenants (property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_email ON tenants (email)`,

	`CREATE TABLE IF NOT EXISTS contractors (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL,
		specialties TEXT[] NOT NULL,
		rating      DOUBLE PRECISION,
		hourly_rate DOUBLE PRECISION,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_active ON contractors (is_active)`,

	`CREATE TABLE IF NOT EXISTS repair_requests (
		id             TEXT PRIMARY KEY,
		property_id    TEXT NOT NULL REFERENCES properties (id),
		tenant_id      TEXT REFERENCES tenants (id),
		title          TEXT NOT NULL,
		description    TEXT NOT NULL,
		category       TEXT NOT NULL,
		priority       TEXT NOT NULL,
		status         TEXT NOT NULL,
		reported_by    TEXT NOT NULL,
		contractor_id  TEXT REFERENCES contractors (id),
		assigned_by    TEXT,
		estimated_cost DOUBLE PRECISION,
		actual_cost    DOUBLE PRECISION,
		scheduled_date BIGINT,
		completed_date BIGINT,
		notes          TEXT,
		images         TEXT[],
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_repairs_property ON repair_requests (property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_repairs_status ON repair_requests (status)`,
	`CREATE INDEX IF NOT EXISTS idx_repairs_priority ON repair_requests (priority)`,
	`CREATE INDEX IF NOT EXISTS idx_repairs_contractor ON repair_requests (contractor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_repairs_category ON repair_requests (category)`,

	`CREATE TABLE IF NOT EXISTS repair_updates (
		id                TEXT PRIMARY KEY,
		seq               BIGSERIAL,
		repair_request_id TEXT NOT NULL REFERENCES repair_requests (id) ON DELETE CASCADE,
		updated_by        TEXT NOT NULL,
		update_type       TEXT NOT NULL,
		old_value         TEXT,
		new_value         TEXT,
		notes             TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_repair_updates_repair ON repair_updates (repair_request_id)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL UNIQUE,
		role         TEXT NOT NULL,
		company_name TEXT,
		phone        TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_profiles_role ON user_profiles (role)`,
}

// Bootstrap ensures the application schema exists. It runs each statement in
// order against the pool and stops at the first failure.
func (db *Database) Bootstrap(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
