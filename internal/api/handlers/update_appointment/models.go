package update_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var (
	errInvalidDay      = errors.New("invalid day")
	errInvalidSchedule = errors.New("invalid schedule")
	errInvalidDuration = errors.New("invalid duration")
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Day          string   `json:"day"`
	Schedule     string   `json:"schedule"`
	Duration     string   `json:"duration,omitempty"` // пусто - оставить текущую
	StartAddress string   `json:"start_address"`
	EndAddress   string   `json:"end_address"`
	Stairs       int      `json:"stairs"`
	Distance     float64  `json:"distance"`
	Staff        bool     `json:"staff"`
	Elevator     bool     `json:"elevator"`
	Description  string   `json:"description"`
	Cost         *float64 `json:"cost,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	State        string  `json:"state"`
	VanID        *int64  `json:"id_van"`
	Day          string  `json:"day"`
	Schedule     string  `json:"schedule"`
	Duration     string  `json:"duration"`
	StartAddress string  `json:"start_address"`
	EndAddress   string  `json:"end_address"`
	Stairs       int     `json:"stairs"`
	Distance     float64 `json:"distance"`
	Staff        bool    `json:"staff"`
	Elevator     bool    `json:"elevator"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"`
	Rescheduled  bool    `json:"rescheduled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64, username string) (*updateAppointment.Request, error) {
	day, err := time.Parse(domain.DateFormat, r.Day)
	if err != nil {
		return nil, errInvalidDay
	}

	schedule, err := types.NewTimeStringFromString(r.Schedule)
	if err != nil {
		return nil, errInvalidSchedule
	}

	var duration *types.TimeString
	if r.Duration != "" {
		d, err := types.NewTimeStringFromString(r.Duration)
		if err != nil {
			return nil, errInvalidDuration
		}
		duration = &d
	}

	return &updateAppointment.Request{
		AppointmentID: id,
		Username:      username,
		Day:           day,
		Schedule:      schedule,
		Duration:      duration,
		StartAddress:  r.StartAddress,
		EndAddress:    r.EndAddress,
		Stairs:        r.Stairs,
		Distance:      r.Distance,
		Staff:         r.Staff,
		Elevator:      r.Elevator,
		Description:   r.Description,
		Cost:          r.Cost,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		State:        resp.State,
		VanID:        resp.VanID,
		Day:          resp.Day.Format(domain.DateFormat),
		Schedule:     resp.Schedule.String(),
		Duration:     resp.Duration.String(),
		StartAddress: resp.StartAddress,
		EndAddress:   resp.EndAddress,
		Stairs:       resp.Stairs,
		Distance:     resp.Distance,
		Staff:        resp.Staff,
		Elevator:     resp.Elevator,
		Description:  resp.Description,
		Cost:         resp.Cost,
		Rescheduled:  resp.Rescheduled,
	}
}
