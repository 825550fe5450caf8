package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default business rules
const (
	DefaultSlotCapacity    = 5              // заявок на один слот (day, schedule)
	DefaultEditLeadTime    = 48 * time.Hour // минимальный запас до начала для изменения/отмены
	DefaultVanBuffer       = time.Hour      // буфер фургона после окончания работы
	DefaultDurationMinutes = 60
)

// Validation limits
const (
	MaxAddressLength     = 255
	MaxDescriptionLength = 1000
	MaxStairs            = 100
	MaxDistanceKm        = 2000
)

// DefaultDailySlots стартовые времена, предлагаемые клиенту (каждый час с 09:00 до 16:00)
var DefaultDailySlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00",
}

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
