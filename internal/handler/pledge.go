package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
	"github.com/segyhp/pledge-engine/pkg/response"
)

// PledgeEngine is the set of engine operations exposed over HTTP.
type PledgeEngine interface {
	CreatePledge(ctx context.Context, request *domain.CreatePledgeRequest) (*domain.Pledge, error)
	GetPledge(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error)
	ListPledges(ctx context.Context) ([]*domain.Pledge, error)
	ListPledgesByCustomer(ctx context.Context, customerID string) ([]*domain.Pledge, error)
	ApplyPayment(ctx context.Context, pledgeID uuid.UUID, request *domain.PaymentRequest) (*domain.PaymentReceipt, error)
	ListPayments(ctx context.Context, pledgeID uuid.UUID) ([]*domain.Payment, error)
	TotalPaid(ctx context.Context, pledgeID uuid.UUID) (*domain.TotalPaidResponse, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	Interest(ctx context.Context, pledgeID uuid.UUID) (*domain.InterestResponse, error)
	SweepAutoClose(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*domain.SummaryResponse, error)
	GetRate(amount decimal.Decimal) decimal.Decimal
	GetMonthlyInterest(amount decimal.Decimal) decimal.Decimal
	QuotePartialPayment(request *domain.PartialPaymentRequest) (*interest.PartialPaymentQuote, error)
}

type PledgeHandler struct {
	engine    PledgeEngine
	validator *validator.Validate
	logger    *slog.Logger
}

func NewPledgeHandler(engine PledgeEngine, logger *slog.Logger) *PledgeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PledgeHandler{
		engine:    engine,
		validator: newValidator(),
		logger:    logger,
	}
}

// CreatePledge handles POST /api/v1/pledges
func (h *PledgeHandler) CreatePledge(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePledgeRequest
	if !h.decode(w, r, &request) {
		return
	}

	pledge, err := h.engine.CreatePledge(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, pledge)
}

// GetPledge handles GET /api/v1/pledges/{pledgeId}
func (h *PledgeHandler) GetPledge(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	pledge, err := h.engine.GetPledge(r.Context(), pledgeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, pledge)
}

// ListPledges handles GET /api/v1/pledges
func (h *PledgeHandler) ListPledges(w http.ResponseWriter, r *http.Request) {
	pledges, err := h.engine.ListPledges(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, pledges)
}

// ListCustomerPledges handles GET /api/v1/customers/{customerId}/pledges
func (h *PledgeHandler) ListCustomerPledges(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	pledges, err := h.engine.ListPledgesByCustomer(r.Context(), customerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, pledges)
}

// SweepAutoClose handles POST /api/v1/pledges/auto-close
func (h *PledgeHandler) SweepAutoClose(w http.ResponseWriter, r *http.Request) {
	closed, err := h.engine.SweepAutoClose(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, domain.SweepResponse{Closed: closed})
}

// Summary handles GET /api/v1/summary
func (h *PledgeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, summary)
}

// decode reads a JSON body into dst and validates it, answering 400 on failure.
func (h *PledgeHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return false
	}

	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}
