package analysis

import (
	"context"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// ContractRepo is the repository port the orchestrator loads contracts
// through (§6). Implementations must be safe for concurrent use.
type ContractRepo interface {
	FindByID(ctx context.Context, id string) (*model.Contract, error)
	FindAll(ctx context.Context) ([]model.Contract, error)
	Create(ctx context.Context, c *model.Contract) error
	Update(ctx context.Context, id string, patch func(*model.Contract)) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// RiskScoreRepo is the repository port the orchestrator persists
// scores through.
type RiskScoreRepo interface {
	FindByContractID(ctx context.Context, contractID string) (*model.RiskScore, error)
	Create(ctx context.Context, s *model.RiskScore) error
	Update(ctx context.Context, s *model.RiskScore) error
	DeleteByContractID(ctx context.Context, contractID string) error
}

// RiskHistoryRepo is the repository port backing durable history,
// distinct from the in-memory history.Store used for fast trend
// queries: a deployment may persist history to both.
type RiskHistoryRepo interface {
	FindByContractID(ctx context.Context, contractID string) ([]model.RiskHistoryEntry, error)
	Create(ctx context.Context, contractID string, entry model.RiskHistoryEntry) error
	Update(ctx context.Context, contractID string, entries []model.RiskHistoryEntry) error
	DeleteByContractID(ctx context.Context, contractID string) error
}

// ScanRepo is the repository port for persisted scan jobs (§4.H),
// named here per the [SUPPLEMENT] port list even though the core only
// needs its shape, not a default implementation.
type ScanRepo interface {
	FindByID(ctx context.Context, id string) (*model.ScanJob, error)
	Create(ctx context.Context, job *model.ScanJob) error
	Update(ctx context.Context, job *model.ScanJob) error
	DeleteByID(ctx context.Context, id string) error
}
