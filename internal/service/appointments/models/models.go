package models

import (
	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// AppointmentResponse заявка в списках
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	UserID       string  `json:"id_user"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	State        string  `json:"state"`
	VanID        *int64  `json:"id_van"`
	DriverName   *string `json:"driver_name"`
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

// AppointmentListResponse список заявок
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainDetails конвертирует заявку из domain
func FromDomainDetails(d *domain.AppointmentDetails) AppointmentResponse {
	state := d.StateName
	if state == "" {
		state = d.StateID.String()
	}

	return AppointmentResponse{
		ID:           d.ID,
		UserID:       d.UserID,
		Username:     d.Username,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		State:        state,
		VanID:        d.VanID,
		DriverName:   d.DriverName,
		Day:          d.Day.Format(domain.DateFormat),
		Schedule:     d.Schedule.String(),
		Duration:     d.Duration.String(),
		StartAddress: d.StartAddress,
		EndAddress:   d.EndAddress,
		Stairs:       d.Stairs,
		Distance:     d.Distance,
		Staff:        d.Staff,
		Elevator:     d.Elevator,
		Description:  d.Description,
		Cost:         d.Cost,
	}
}

// FromDomainDetailsList конвертирует список заявок; пустой список сериализуется как []
func FromDomainDetailsList(list []*domain.AppointmentDetails) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, d := range list {
		resp.Appointments = append(resp.Appointments, FromDomainDetails(d))
	}
	return resp
}
