package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	customError "github.com/segyhp/pledge-engine/pkg/errors"
)

const paymentColumns = `id, pledge_id, amount, payment_type, payment_date, notes, created_at`

func (r *postgresGateway) AppendPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.PledgeID,
		payment.Amount,
		payment.PaymentType,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored := *payment
	return &stored, nil
}

func (r *postgresGateway) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`

	var payment domain.Payment
	err := sqlx.GetContext(ctx, r.q, &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentNotFound(id.String())
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *postgresGateway) ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE pledge_id = $1
		ORDER BY payment_date DESC, created_at DESC, id DESC
	`

	var payments []*domain.Payment
	if err := sqlx.SelectContext(ctx, r.q, &payments, query, pledgeID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *postgresGateway) TotalPaid(ctx context.Context, pledgeID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE pledge_id = $1`

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, r.q, &total, query, pledgeID); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *postgresGateway) DeletePayment(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapPaymentNotFound(id.String())
	}

	return nil
}
