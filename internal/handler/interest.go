package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/internal/interest"
	"github.com/segyhp/pledge-engine/pkg/response"
	"github.com/segyhp/pledge-engine/pkg/utils"
)

// GetRate handles GET /api/v1/interest/rate?amount=
func (h *PledgeHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	amount, ok := queryAmount(w, r)
	if !ok {
		return
	}

	response.Success(w, domain.RateResponse{
		Amount:       amount,
		InterestRate: h.engine.GetRate(amount),
		Slab:         interest.SlabLabel(amount),
	})
}

// CalculateInterest handles GET /api/v1/interest/calculate?amount=
func (h *PledgeHandler) CalculateInterest(w http.ResponseWriter, r *http.Request) {
	amount, ok := queryAmount(w, r)
	if !ok {
		return
	}

	monthly := h.engine.GetMonthlyInterest(amount)
	response.Success(w, domain.RateResponse{
		Amount:          amount,
		InterestRate:    h.engine.GetRate(amount),
		MonthlyInterest: &monthly,
		Slab:            interest.SlabLabel(amount),
	})
}

// QuotePartialPayment handles POST /api/v1/interest/partial-payment
func (h *PledgeHandler) QuotePartialPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.PartialPaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	quote, err := h.engine.QuotePartialPayment(&request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, quote)
}

// PledgeInterest handles GET /api/v1/pledges/{pledgeId}/interest
func (h *PledgeHandler) PledgeInterest(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	report, err := h.engine.Interest(r.Context(), pledgeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, report)
}

func queryAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		response.BadRequest(w, "amount query parameter is required", nil)
		return decimal.Zero, false
	}

	amount, err := utils.DecimalFromString(raw)
	if err != nil {
		response.BadRequest(w, "amount must be a decimal number", err)
		return decimal.Zero, false
	}
	return amount, true
}
