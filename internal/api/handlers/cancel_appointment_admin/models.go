package cancel_appointment_admin

import cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"

// ContactResponse контакты владельца отменённой заявки
type ContactResponse struct {
	UserID    string `json:"id_user"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     int64  `json:"phone"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	AppointmentID int64           `json:"id"`
	Contact       ContactResponse `json:"contact"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.AdminResponse) *CancelResponse {
	return &CancelResponse{
		AppointmentID: resp.AppointmentID,
		Contact: ContactResponse{
			UserID:    resp.Contact.UserID,
			FirstName: resp.Contact.FirstName,
			LastName:  resp.Contact.LastName,
			Email:     resp.Contact.Email,
			Phone:     resp.Contact.Phone,
		},
	}
}
