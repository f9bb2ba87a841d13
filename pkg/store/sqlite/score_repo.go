package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// ScoreRepo is a database/sql-backed implementation of
// analysis.RiskScoreRepo.
type ScoreRepo struct {
	db *sql.DB
}

func NewScoreRepo(db *sql.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

func (r *ScoreRepo) FindByContractID(ctx context.Context, contractID string) (*model.RiskScore, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT contract_id, score, calculated_at, flags, breakdown FROM risk_scores WHERE contract_id = ?", contractID)

	var (
		score       model.RiskScore
		calculated  string
		flagsJSON   sql.NullString
		breakdownJSON sql.NullString
	)
	err := row.Scan(&score.ContractID, &score.Score, &calculated, &flagsJSON, &breakdownJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	score.CalculatedAt = parseTime(calculated)
	if flagsJSON.Valid {
		_ = json.Unmarshal([]byte(flagsJSON.String), &score.Flags)
	}
	if breakdownJSON.Valid {
		var breakdown model.ScoreBreakdown
		if err := json.Unmarshal([]byte(breakdownJSON.String), &breakdown); err == nil {
			score.Breakdown = &breakdown
		}
	}
	return &score, nil
}

func (r *ScoreRepo) Create(ctx context.Context, s *model.RiskScore) error {
	flags, breakdown, err := marshalScore(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO risk_scores (contract_id, score, calculated_at, flags, breakdown) VALUES (?, ?, ?, ?, ?)",
		s.ContractID, s.Score, s.CalculatedAt.UTC().Format(time.RFC3339Nano), flags, breakdown,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert risk score: %w", err)
	}
	return nil
}

func (r *ScoreRepo) Update(ctx context.Context, s *model.RiskScore) error {
	flags, breakdown, err := marshalScore(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE risk_scores SET score=?, calculated_at=?, flags=?, breakdown=? WHERE contract_id=?",
		s.Score, s.CalculatedAt.UTC().Format(time.RFC3339Nano), flags, breakdown, s.ContractID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update risk score: %w", err)
	}
	return nil
}

func (r *ScoreRepo) DeleteByContractID(ctx context.Context, contractID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM risk_scores WHERE contract_id = ?", contractID)
	return err
}

func marshalScore(s *model.RiskScore) (flags, breakdown string, err error) {
	b, err := json.Marshal(s.Flags)
	if err != nil {
		return "", "", err
	}
	flags = string(b)

	b, err = json.Marshal(s.Breakdown)
	if err != nil {
		return "", "", err
	}
	breakdown = string(b)
	return flags, breakdown, nil
}
