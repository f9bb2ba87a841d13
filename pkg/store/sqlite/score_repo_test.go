package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func TestScoreRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewScoreRepo(db)
	score := &model.RiskScore{
		ContractID:   "contract-1",
		Score:        72,
		CalculatedAt: time.Now(),
		Flags:        []model.RiskFlag{{Code: "FIN_CONTINGENCY_MISSING", Severity: model.SeverityCritical}},
		Breakdown:    &model.ScoreBreakdown{ClauseScore: 1.2},
	}

	mock.ExpectExec("INSERT INTO risk_scores").
		WithArgs(score.ContractID, score.Score, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), score))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepo_FindByContractID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewScoreRepo(db)
	mock.ExpectQuery("SELECT contract_id, score, calculated_at, flags, breakdown FROM risk_scores").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"contract_id", "score", "calculated_at", "flags", "breakdown"}))

	score, err := repo.FindByContractID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestScoreRepo_FindByContractID_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewScoreRepo(db)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	mock.ExpectQuery("SELECT contract_id, score, calculated_at, flags, breakdown FROM risk_scores").
		WithArgs("contract-1").
		WillReturnRows(sqlmock.NewRows([]string{"contract_id", "score", "calculated_at", "flags", "breakdown"}).
			AddRow("contract-1", 55, now, `[{"Code":"X","Severity":"high"}]`, `{"clauseScore":1.5}`))

	score, err := repo.FindByContractID(context.Background(), "contract-1")
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 55, score.Score)
	assert.Len(t, score.Flags, 1)
	assert.Equal(t, 1.5, score.Breakdown.ClauseScore)
}
