package check_eligibility

import (
	"math"

	checkEligibility "github.com/m04kA/SMC-MovingService/internal/usecase/check_eligibility"
)

// EligibilityResponse HTTP response model
type EligibilityResponse struct {
	Eligible   bool    `json:"eligible"`
	Reason     string  `json:"reason,omitempty"`
	HoursUntil float64 `json:"hours_until"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkEligibility.Response) *EligibilityResponse {
	return &EligibilityResponse{
		Eligible:   resp.Eligible,
		Reason:     resp.Reason,
		HoursUntil: math.Round(resp.HoursUntil*10) / 10,
	}
}
