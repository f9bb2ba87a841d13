package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// HistoryRepo is a database/sql-backed implementation of
// analysis.RiskHistoryRepo, durable storage for the risk-history time
// series the in-memory history.Store also keeps for fast trend reads.
type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) FindByContractID(ctx context.Context, contractID string) ([]model.RiskHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT analyzed_at, score, flags FROM risk_history_entries WHERE contract_id = ? ORDER BY analyzed_at ASC", contractID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.RiskHistoryEntry
	for rows.Next() {
		var (
			analyzedAt string
			entry      model.RiskHistoryEntry
			flagsJSON  sql.NullString
		)
		if err := rows.Scan(&analyzedAt, &entry.Score, &flagsJSON); err != nil {
			return nil, err
		}
		entry.AnalyzedAt = parseTime(analyzedAt)
		if flagsJSON.Valid {
			_ = json.Unmarshal([]byte(flagsJSON.String), &entry.Flags)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) Create(ctx context.Context, contractID string, entry model.RiskHistoryEntry) error {
	flags, err := json.Marshal(entry.Flags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO risk_history_entries (contract_id, analyzed_at, score, flags) VALUES (?, ?, ?, ?)",
		contractID, entry.AnalyzedAt.UTC().Format(time.RFC3339Nano), entry.Score, string(flags),
	)
	return err
}

// Update replaces a contract's entire persisted history with entries,
// mirroring the in-memory store's FIFO-capped slice. Used after a
// cap-triggered eviction to keep durable storage consistent.
func (r *HistoryRepo) Update(ctx context.Context, contractID string, entries []model.RiskHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM risk_history_entries WHERE contract_id = ?", contractID); err != nil {
		return err
	}
	for _, entry := range entries {
		flags, err := json.Marshal(entry.Flags)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO risk_history_entries (contract_id, analyzed_at, score, flags) VALUES (?, ?, ?, ?)",
			contractID, entry.AnalyzedAt.UTC().Format(time.RFC3339Nano), entry.Score, string(flags),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *HistoryRepo) DeleteByContractID(ctx context.Context, contractID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM risk_history_entries WHERE contract_id = ?", contractID)
	return err
}
