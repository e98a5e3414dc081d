package shift

type CreateShiftRequest struct {
	DriverID  string  `json:"driver_id" binding:"required,uuid"`
	StartTime string  `json:"start_time"`
	Notes     *string `json:"notes"`
}

type StartShiftRequest struct {
	DriverID string  `json:"driver_id" binding:"required,uuid"`
	Notes    *string `json:"notes"`
}

type EndShiftRequest struct {
	EndTime *string `json:"end_time"`
}

type UpdateShiftRequest struct {
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
}

type TransitionShiftRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ACTIVE COMPLETED CANCELLED"`
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	DriverID   string  `json:"driver_id"`
	DriverName string  `json:"driver_name,omitempty"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time,omitempty"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}
