package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var (
	errInvalidDay      = errors.New("invalid day")
	errInvalidSchedule = errors.New("invalid schedule")
	errInvalidDuration = errors.New("invalid duration")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Username     string   `json:"username,omitempty"` // только для администратора
	Day          string   `json:"day"`                // "2025-06-01"
	Schedule     string   `json:"schedule"`           // "09:00"
	Duration     string   `json:"duration,omitempty"` // "02:00"
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
	UserID       string  `json:"id_user"`
	State        string  `json:"state"`
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
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(owner string) (*createAppointment.Request, error) {
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

	return &createAppointment.Request{
		Username:     owner,
		Day:          day,
		Schedule:     schedule,
		Duration:     duration,
		StartAddress: r.StartAddress,
		EndAddress:   r.EndAddress,
		Stairs:       r.Stairs,
		Distance:     r.Distance,
		Staff:        r.Staff,
		Elevator:     r.Elevator,
		Description:  r.Description,
		Cost:         r.Cost,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		State:        resp.State,
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
	}
}
