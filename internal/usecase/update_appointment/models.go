package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Request изменение заявки владельцем
type Request struct {
	AppointmentID int64
	Username      string // владелец (из токена)
	Day           time.Time
	Schedule      types.TimeString
	Duration      *types.TimeString // nil - оставить текущую
	StartAddress  string
	EndAddress    string
	Stairs        int
	Distance      float64
	Staff         bool
	Elevator      bool
	Description   string
	Cost          *float64 // стоимость, посчитанная клиентом (только для сверки)
}

// Response изменённая заявка
type Response struct {
	ID           int64
	State        string
	VanID        *int64
	Day          time.Time
	Schedule     types.TimeString
	Duration     types.TimeString
	StartAddress string
	EndAddress   string
	Stairs       int
	Distance     float64
	Staff        bool
	Elevator     bool
	Description  string
	Cost         float64
	Rescheduled  bool // изменились день или время
}
