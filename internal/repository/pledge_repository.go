package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
)

const pledgeColumns = `id, customer_id, title, description, principal, interest_rate, created_at, deadline,
	status, item_type, weight, purity, notes, version, updated_at`

func (r *postgresGateway) CreatePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	query := `
		INSERT INTO pledges (` + pledgeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	stored := pledge.Clone()
	if stored.Version == 0 {
		stored.Version = 1
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, query,
		stored.ID,
		stored.CustomerID,
		stored.Title,
		stored.Description,
		stored.Principal,
		stored.InterestRate,
		stored.CreatedAt,
		stored.Deadline,
		stored.Status,
		stored.ItemType,
		stored.Weight,
		stored.Purity,
		stored.Notes,
		stored.Version,
		stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *postgresGateway) LoadPledge(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		WHERE id = $1
	`

	var pledge domain.Pledge
	err := sqlx.GetContext(ctx, r.q, &pledge, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPledgeNotFound(id.String())
	}
	if err != nil {
		return nil, err
	}

	return &pledge, nil
}

func (r *postgresGateway) SavePledge(ctx context.Context, pledge *domain.Pledge) (*domain.Pledge, error) {
	query := `
		UPDATE pledges
		SET customer_id = $3, title = $4, description = $5, principal = $6, interest_rate = $7,
			deadline = $8, status = $9, item_type = $10, weight = $11, purity = $12, notes = $13,
			version = version + 1, updated_at = $14
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	saved := pledge.Clone()
	err := r.q.QueryRowxContext(ctx, query,
		pledge.ID,
		pledge.Version,
		pledge.CustomerID,
		pledge.Title,
		pledge.Description,
		pledge.Principal,
		pledge.InterestRate,
		pledge.Deadline,
		pledge.Status,
		pledge.ItemType,
		pledge.Weight,
		pledge.Purity,
		pledge.Notes,
		time.Now().UTC(),
	).Scan(&saved.Version, &saved.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.staleWrite(ctx, pledge)
	}
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// staleWrite explains why an optimistic update matched no row.
func (r *postgresGateway) staleWrite(ctx context.Context, pledge *domain.Pledge) error {
	var current int64
	err := sqlx.GetContext(ctx, r.q, &current, `SELECT version FROM pledges WHERE id = $1`, pledge.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapPledgeNotFound(pledge.ID.String())
	}
	if err != nil {
		return err
	}
	return customError.WrapConflict(pledge.ID.String(), pledge.Version, current)
}

func (r *postgresGateway) ListPledges(ctx context.Context) ([]*domain.Pledge, error) {
	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		ORDER BY created_at DESC, id DESC
	`

	var pledges []*domain.Pledge
	if err := sqlx.SelectContext(ctx, r.q, &pledges, query); err != nil {
		return nil, err
	}

	return pledges, nil
}

func (r *postgresGateway) ListPledgesByStatus(ctx context.Context, status domain.PledgeStatus) ([]*domain.Pledge, error) {
	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
	`

	var pledges []*domain.Pledge
	if err := sqlx.SelectContext(ctx, r.q, &pledges, query, status); err != nil {
		return nil, err
	}

	return pledges, nil
}

func (r *postgresGateway) ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error) {
	query := `
		SELECT ` + pledgeColumns + `
		FROM pledges
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
	`

	var pledges []*domain.Pledge
	if err := sqlx.SelectContext(ctx, r.q, &pledges, query, customerID); err != nil {
		return nil, err
	}

	return pledges, nil
}

func (r *postgresGateway) SumPrincipalByStatus(ctx context.Context, status domain.PledgeStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(principal), 0) FROM pledges WHERE status = $1`

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, r.q, &total, query, status); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *postgresGateway) CountPledgesByStatus(ctx context.Context, status domain.PledgeStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM pledges WHERE status = $1`

	var count int64
	if err := sqlx.GetContext(ctx, r.q, &count, query, status); err != nil {
		return 0, err
	}

	return count, nil
}
