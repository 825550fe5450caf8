package assign_van

import assignVan "github.com/m04kA/SMC-MovingService/internal/usecase/assign_van"

// AssignVanRequest HTTP request model
type AssignVanRequest struct {
	VanID int64 `json:"id_van"`
}

// AssignVanResponse HTTP response model
type AssignVanResponse struct {
	AppointmentID int64  `json:"id"`
	VanID         int64  `json:"id_van"`
	PreviousVanID *int64 `json:"previous_id_van"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignVanRequest) ToUseCaseRequest(appointmentID int64) *assignVan.Request {
	return &assignVan.Request{
		AppointmentID: appointmentID,
		VanID:         r.VanID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignVan.Response) *AssignVanResponse {
	return &AssignVanResponse{
		AppointmentID: resp.AppointmentID,
		VanID:         resp.VanID,
		PreviousVanID: resp.PreviousVanID,
	}
}
