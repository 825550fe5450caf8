package get_prices

import (
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /prices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.ListPrices(r.Context())
	if err != nil {
		h.logger.Error("GET /prices - Failed to list prices: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /prices - Prices retrieved: count=%d", len(prices.Prices))
	handlers.RespondJSON(w, http.StatusOK, prices)
}
