package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/pledge-engine/internal/config"
	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/lock"
	"github.com/segyhp/pledge-engine/internal/repository"
	"github.com/segyhp/pledge-engine/internal/service"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(open)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func noLedger(t *testing.T) Opener {
	return func(context.Context) (Engine, func(), error) {
		t.Fatal("pure command opened the ledger")
		return nil, nil, nil
	}
}

func memoryEngine(t *testing.T) (*service.PledgeService, Opener, *bool) {
	t.Helper()
	cfg := &config.Config{Business: config.BusinessConfig{MaxPrincipal: "10000000", MaxInterestRate: "36"}}
	svc := service.NewPledgeService(repository.NewMemory(), lock.NewLocal(), cfg, nil).
		WithClock(func() time.Time { return testNow })
	closed := false
	open := func(context.Context) (Engine, func(), error) {
		return svc, func() { closed = true }, nil
	}
	return svc, open, &closed
}

func createPledge(t *testing.T, svc *service.PledgeService, principal int64) *domain.Pledge {
	t.Helper()
	pledge, err := svc.CreatePledge(context.Background(), &domain.CreatePledgeRequest{
		CustomerID: "CUST-1",
		Title:      "Gold bangle",
		Principal:  decimal.NewFromInt(principal),
		Deadline:   testNow.AddDate(0, 3, 0),
		ItemType:   "bangle",
		Weight:     decimal.NewFromInt(12),
		Purity:     "22K",
	})
	require.NoError(t, err)
	return pledge
}

func TestRateCommand(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"49999.99", "rate: 3%\nslab: 0-49,999 (3%)"},
		{"50000", "rate: 2.5%\nslab: 50,000-99,999 (2.5%)"},
		{"100000", "rate: 2%\nslab: 1,00,000+ (2%)"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			out, err := run(t, noLedger(t), "rate", tt.amount)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestInterestCommand(t *testing.T) {
	out, err := run(t, noLedger(t), "interest", "60000")
	require.NoError(t, err)
	assert.Contains(t, out, "rate: 2.5%")
	assert.Contains(t, out, "monthly interest: 1500.00")
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, noLedger(t), "quote", "100000", "40000")
	require.NoError(t, err)
	assert.Contains(t, out, "original: 100000.00 at 2% (monthly 2000.00)")
	assert.Contains(t, out, "remaining: 60000.00 at 2.5% (monthly 1500.00)")
}

func TestQuoteCommand_PaymentAboveOriginal(t *testing.T) {
	_, err := run(t, noLedger(t), "quote", "1000", "2000")
	require.Error(t, err)
}

func TestCalcCommands_BadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rate not a number", []string{"rate", "abc"}},
		{"rate missing amount", []string{"rate"}},
		{"quote one argument", []string{"quote", "1000"}},
		{"quote bad payment", []string{"quote", "1000", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, noLedger(t), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestApplyCommand(t *testing.T) {
	svc, open, closed := memoryEngine(t)
	pledge := createPledge(t, svc, 100000)

	out, err := run(t, open, "apply", pledge.ID.String(), "40000", "--notes", "counter payment")
	require.NoError(t, err)
	assert.Contains(t, out, "(PARTIAL) applied")
	assert.Contains(t, out, "principal: 60000.00")
	assert.Contains(t, out, "rate: 2.5%")
	assert.Contains(t, out, "monthly interest: 1500.00")
	assert.Contains(t, out, "status: PARTIALLY_PAID")
	assert.True(t, *closed)

	payments, err := svc.ListPayments(context.Background(), pledge.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "counter payment", payments[0].Notes)
}

func TestApplyCommand_Errors(t *testing.T) {
	svc, open, _ := memoryEngine(t)
	pledge := createPledge(t, svc, 1000)

	_, err := run(t, open, "apply", "not-a-uuid", "10")
	assert.Error(t, err)

	_, err = run(t, open, "apply", pledge.ID.String(), "5000")
	assert.Error(t, err)
}

func TestApplyCommand_OpenFailure(t *testing.T) {
	open := func(context.Context) (Engine, func(), error) {
		return nil, nil, errors.New("database unavailable")
	}

	_, err := run(t, open, "apply", "2f6a1c3e-8b1d-4c52-9a0e-6f1c2d3e4b5a", "10")
	assert.EqualError(t, err, "database unavailable")
}

func TestSweepCommand(t *testing.T) {
	svc, open, closed := memoryEngine(t)
	createPledge(t, svc, 1000)

	out, err := run(t, open, "sweep")
	require.NoError(t, err)
	assert.Equal(t, "closed 0 pledges\n", out)
	assert.True(t, *closed)
}
