package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Request модель запроса на создание заявки
type Request struct {
	Username     string            // владелец (из токена)
	Day          time.Time         // день (без времени)
	Schedule     types.TimeString  // время начала, одно из дневных слотов
	Duration     *types.TimeString // длительность, по умолчанию из правил
	StartAddress string
	EndAddress   string
	Stairs       int
	Distance     float64 // км
	Staff        bool
	Elevator     bool
	Description  string
	Cost         *float64 // стоимость, посчитанная клиентом (только для сверки)
}

// Response созданная заявка
type Response struct {
	ID           int64
	UserID       string
	State        string
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
}
