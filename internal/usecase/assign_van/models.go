package assign_van

// Request запрос на назначение (или переназначение) фургона
type Request struct {
	AppointmentID int64
	VanID         int64
}

// Response результат назначения
type Response struct {
	AppointmentID int64
	VanID         int64
	PreviousVanID *int64 // nil, если фургон назначается впервые
}
