package check_eligibility

// Request запрос проверки возможности изменить или отменить заявку
type Request struct {
	AppointmentID int64
	Username      string
}

// Response результат проверки
type Response struct {
	Eligible   bool
	Reason     string
	HoursUntil float64
}
