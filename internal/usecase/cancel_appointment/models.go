package cancel_appointment

import "github.com/m04kA/SMC-MovingService/internal/domain"

// OwnerRequest отмена заявки владельцем
type OwnerRequest struct {
	AppointmentID int64
	Username      string
}

// AdminRequest отмена заявки администратором
type AdminRequest struct {
	AppointmentID int64
}

// AdminResponse контакты владельца, чтобы администратор мог его предупредить
type AdminResponse struct {
	AppointmentID int64
	Contact       domain.UserContact
}
