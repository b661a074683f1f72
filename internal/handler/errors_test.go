package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/tests/mocks"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"pledge not found", customError.WrapPledgeNotFound("p"), http.StatusNotFound},
		{"payment not found", customError.WrapPaymentNotFound("p"), http.StatusNotFound},
		{"conflict", customError.WrapConflict("p", 1, 2), http.StatusConflict},
		{"lock contention", customError.WrapLockError("p", customError.ErrLockNotAcquired), http.StatusConflict},
		{"closed", customError.WrapPledgeClosed("p"), http.StatusConflict},
		{"precondition", customError.WrapPrecondition(customError.ErrRateNotSet), http.StatusUnprocessableEntity},
		{"invalid payment", customError.WrapInvalidPayment("bad"), http.StatusBadRequest},
		{"invalid pledge", customError.WrapInvalidPledge("bad"), http.StatusBadRequest},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"database", customError.WrapDatabaseError(errors.New("boom")), http.StatusInternalServerError},
		{"lock backend down", customError.WrapLockError("p", errors.New("dial tcp")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	engine := &mocks.MockPledgeEngine{}
	engine.On("Summary", mock.Anything).Return(nil, customError.WrapDatabaseError(errors.New("password authentication failed")))

	rec, env := do(t, newRouter(engine), http.MethodGet, "/api/v1/summary", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, customError.ErrCodeDatabaseError, env.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	engine.AssertExpectations(t)
}

func TestWriteError_NotFoundCarriesCode(t *testing.T) {
	engine := &mocks.MockPledgeEngine{}
	engine.On("GetPayment", mock.Anything, mock.Anything).Return(nil, customError.WrapPaymentNotFound("x"))

	rec, env := do(t, newRouter(engine), http.MethodGet, "/api/v1/payments/7f1d2a4e-8c55-4df0-9d7e-2f4a8c6b1e11", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, customError.ErrCodePaymentNotFound, env.Code)
	assert.False(t, env.Success)
	engine.AssertExpectations(t)
}

func TestWriteError_ConflictIsRetryable(t *testing.T) {
	engine := &mocks.MockPledgeEngine{}
	engine.On("SweepAutoClose", mock.Anything).Return(0, customError.WrapConflict("p", 3, 4))

	rec, env := do(t, newRouter(engine), http.MethodPost, "/api/v1/pledges/auto-close", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, customError.ErrCodeConflict, env.Code)
}
