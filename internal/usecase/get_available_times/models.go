package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Request модель запроса свободных времён на день
type Request struct {
	Day time.Time
}

// Response свободные времена в порядке списка дневных слотов
type Response struct {
	Day   time.Time
	Times []types.TimeString
}
