package get_available_vans

import (
	"errors"
	"net/url"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	getAvailableVans "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_vans"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var (
	errInvalidDate     = errors.New("invalid date")
	errInvalidSchedule = errors.New("invalid schedule")
	errInvalidDuration = errors.New("invalid duration")
)

// VanResponse HTTP response model
type VanResponse struct {
	ID           int64  `json:"id"`
	DriverName   string `json:"driver_name"`
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
}

// AvailableVansResponse HTTP response model
type AvailableVansResponse struct {
	Vans []VanResponse `json:"vans"`
}

// ParseQuery разбирает ?date=YYYY-MM-DD&schedule=HH:MM&duration=HH:MM
func ParseQuery(q url.Values) (*getAvailableVans.Request, error) {
	day, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		return nil, errInvalidDate
	}

	schedule, err := types.NewTimeStringFromString(q.Get("schedule"))
	if err != nil {
		return nil, errInvalidSchedule
	}

	req := &getAvailableVans.Request{Day: day, Time: schedule}

	if raw := q.Get("duration"); raw != "" {
		duration, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, errInvalidDuration
		}
		req.Duration = &duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableVans.Response) *AvailableVansResponse {
	vans := make([]VanResponse, 0, len(resp.Vans))
	for _, v := range resp.Vans {
		vans = append(vans, VanResponse{
			ID:           v.ID,
			DriverName:   v.DriverName,
			LicensePlate: v.LicensePlate,
			Model:        v.Model,
		})
	}
	return &AvailableVansResponse{Vans: vans}
}
