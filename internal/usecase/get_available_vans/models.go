package get_available_vans

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Request модель запроса свободных фургонов
type Request struct {
	Day      time.Time
	Time     types.TimeString
	Duration *types.TimeString // опционально, без неё окно [Time, Time+буфер)
}

// Van свободный фургон
type Van struct {
	ID           int64
	DriverName   string
	LicensePlate string
	Model        string
}

// Response свободные фургоны, отсортированные по id
type Response struct {
	Vans []Van
}
