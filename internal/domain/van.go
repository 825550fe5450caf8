package domain

// Van фургон. Available это ручной флаг администратора,
// он не зависит от расписания и не меняется при назначении на заявку.
type Van struct {
	ID           int64
	DriverName   string
	LicensePlate string
	Model        string
	Available    bool
}
