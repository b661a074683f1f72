package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the health probes and the v1 API on router.
func RegisterRoutes(router *mux.Router, pledges *PledgeHandler, health *HealthHandler) {
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Fixed paths go before {pledgeId} so mux does not read "auto-close" as an id.
	api.HandleFunc("/pledges/auto-close", pledges.SweepAutoClose).Methods(http.MethodPost)
	api.HandleFunc("/pledges", pledges.CreatePledge).Methods(http.MethodPost)
	api.HandleFunc("/pledges", pledges.ListPledges).Methods(http.MethodGet)
	api.HandleFunc("/pledges/{pledgeId}", pledges.GetPledge).Methods(http.MethodGet)
	api.HandleFunc("/pledges/{pledgeId}/interest", pledges.PledgeInterest).Methods(http.MethodGet)
	api.HandleFunc("/pledges/{pledgeId}/payments", pledges.ApplyPayment).Methods(http.MethodPost)
	api.HandleFunc("/pledges/{pledgeId}/payments", pledges.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/pledges/{pledgeId}/payments/total", pledges.TotalPaid).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}/pledges", pledges.ListCustomerPledges).Methods(http.MethodGet)

	api.HandleFunc("/payments/{paymentId}", pledges.GetPayment).Methods(http.MethodGet)
	api.HandleFunc("/payments/{paymentId}", pledges.DeletePayment).Methods(http.MethodDelete)

	api.HandleFunc("/interest/rate", pledges.GetRate).Methods(http.MethodGet)
	api.HandleFunc("/interest/calculate", pledges.CalculateInterest).Methods(http.MethodGet)
	api.HandleFunc("/interest/partial-payment", pledges.QuotePartialPayment).Methods(http.MethodPost)

	api.HandleFunc("/summary", pledges.Summary).Methods(http.MethodGet)
}
