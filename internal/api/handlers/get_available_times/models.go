package get_available_times

import (
	"github.com/m04kA/SMC-MovingService/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, 0, len(resp.Times))
	for _, t := range resp.Times {
		times = append(times, t.String())
	}
	return &AvailableTimesResponse{
		Day:   resp.Day.Format(domain.DateFormat),
		Times: times,
	}
}
