package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// ContractRepo is a database/sql-backed implementation of
// analysis.ContractRepo.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo wraps db, which must already have had Migrate run
// against it.
func NewContractRepo(db *sql.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

const contractColumns = "id, title, owner_user_id, organization_id, status, state, created_at, updated_at, clauses, disclosures, addenda, documents"

func (r *ContractRepo) FindByID(ctx context.Context, id string) (*model.Contract, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contractColumns+" FROM contracts WHERE id = ?", id)
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ContractRepo) FindAll(ctx context.Context) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+contractColumns+" FROM contracts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContractRepo) Create(ctx context.Context, c *model.Contract) error {
	clauses, disclosures, addenda, documents, err := marshalContractChildren(c)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO contracts (id, title, owner_user_id, organization_id, status, state, created_at, updated_at, clauses, disclosures, addenda, documents)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.OwnerUserID, c.OrganizationID, c.Status, c.State,
		c.CreatedAt.UTC().Format(time.RFC3339Nano), c.UpdatedAt.UTC().Format(time.RFC3339Nano),
		clauses, disclosures, addenda, documents,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert contract: %w", err)
	}
	return nil
}

func (r *ContractRepo) Update(ctx context.Context, id string, patch func(*model.Contract)) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("sqlite: contract %q not found", id)
	}
	patch(existing)
	existing.UpdatedAt = time.Now()

	clauses, disclosures, addenda, documents, err := marshalContractChildren(existing)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE contracts SET title=?, owner_user_id=?, organization_id=?, status=?, state=?, updated_at=?, clauses=?, disclosures=?, addenda=?, documents=? WHERE id=?`,
		existing.Title, existing.OwnerUserID, existing.OrganizationID, existing.Status, existing.State,
		existing.UpdatedAt.UTC().Format(time.RFC3339Nano), clauses, disclosures, addenda, documents, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update contract: %w", err)
	}
	return nil
}

func (r *ContractRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contracts WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*model.Contract, error) {
	var (
		c                                            model.Contract
		createdAt, updatedAt                         string
		clauses, disclosures, addenda, documents     sql.NullString
	)
	err := row.Scan(&c.ID, &c.Title, &c.OwnerUserID, &c.OrganizationID, &c.Status, &c.State,
		&createdAt, &updatedAt, &clauses, &disclosures, &addenda, &documents)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)

	if clauses.Valid {
		_ = json.Unmarshal([]byte(clauses.String), &c.Clauses)
	}
	if disclosures.Valid {
		_ = json.Unmarshal([]byte(disclosures.String), &c.Disclosures)
	}
	if addenda.Valid {
		_ = json.Unmarshal([]byte(addenda.String), &c.Addenda)
	}
	if documents.Valid {
		_ = json.Unmarshal([]byte(documents.String), &c.Documents)
	}
	return &c, nil
}

func marshalContractChildren(c *model.Contract) (clauses, disclosures, addenda, documents string, err error) {
	b, err := json.Marshal(c.Clauses)
	if err != nil {
		return "", "", "", "", err
	}
	clauses = string(b)

	b, err = json.Marshal(c.Disclosures)
	if err != nil {
		return "", "", "", "", err
	}
	disclosures = string(b)

	b, err = json.Marshal(c.Addenda)
	if err != nil {
		return "", "", "", "", err
	}
	addenda = string(b)

	b, err = json.Marshal(c.Documents)
	if err != nil {
		return "", "", "", "", err
	}
	documents = string(b)
	return clauses, disclosures, addenda, documents, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
