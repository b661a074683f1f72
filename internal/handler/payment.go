package handler

import (
	"net/http"

	"github.com/segyhp/pledge-engine/internal/domain"
	"github.com/segyhp/pledge-engine/pkg/response"
)

// ApplyPayment handles POST /api/v1/pledges/{pledgeId}/payments
func (h *PledgeHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	var request domain.PaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	receipt, err := h.engine.ApplyPayment(r.Context(), pledgeID, &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, receipt)
}

// ListPayments handles GET /api/v1/pledges/{pledgeId}/payments
func (h *PledgeHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	payments, err := h.engine.ListPayments(r.Context(), pledgeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, payments)
}

// TotalPaid handles GET /api/v1/pledges/{pledgeId}/payments/total
func (h *PledgeHandler) TotalPaid(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	total, err := h.engine.TotalPaid(r.Context(), pledgeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, total)
}

// GetPayment handles GET /api/v1/payments/{paymentId}
func (h *PledgeHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	payment, err := h.engine.GetPayment(r.Context(), paymentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, payment)
}

// DeletePayment handles DELETE /api/v1/payments/{paymentId}
func (h *PledgeHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	if err := h.engine.DeletePayment(r.Context(), paymentID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
