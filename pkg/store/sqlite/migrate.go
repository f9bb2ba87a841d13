// Package sqlite is the reference repository implementation backing
// pkg/analysis's ContractRepo, RiskScoreRepo, and RiskHistoryRepo
// ports, adapted from the pack's sqlite-backed store shape: one
// migrate-on-construct table set, context-scoped queries, and
// NullString/manual time-format handling rather than an ORM.
package sqlite

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS contracts (
	id               TEXT PRIMARY KEY,
	title            TEXT,
	owner_user_id    TEXT,
	organization_id  TEXT,
	status           TEXT,
	state            TEXT,
	created_at       DATETIME,
	updated_at       DATETIME,
	clauses          JSON,
	disclosures      JSON,
	addenda          JSON,
	documents        JSON
);

CREATE TABLE IF NOT EXISTS risk_scores (
	contract_id   TEXT PRIMARY KEY,
	score         INTEGER,
	calculated_at DATETIME,
	flags         JSON,
	breakdown     JSON
);

CREATE TABLE IF NOT EXISTS risk_history_entries (
	contract_id TEXT,
	analyzed_at DATETIME,
	score       INTEGER,
	flags       JSON
);

CREATE INDEX IF NOT EXISTS idx_risk_history_contract ON risk_history_entries(contract_id, analyzed_at);
`

// Migrate creates every table this package needs, if absent.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
