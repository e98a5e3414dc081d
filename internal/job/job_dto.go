package job

type CreateJobRequest struct {
	ShiftID  string  `json:"shift_id" binding:"required,uuid"`
	ClientID *string `json:"client_id" binding:"omitempty,uuid"`
	JobDate  string  `json:"job_date" binding:"required"`
	Notes    *string `json:"notes"`
}

type UpdateJobRequest struct {
	ClientID *string `json:"client_id" binding:"omitempty,uuid"`
	JobDate  string  `json:"job_date" binding:"required"`
	Notes    *string `json:"notes"`
}

type TransitionJobRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ASSIGNED COMPLETED CANCELLED"`
}

type CreateJobLineRequest struct {
	ProductID    string  `json:"product_id" binding:"required,uuid"`
	DriverID     string  `json:"driver_id" binding:"required,uuid"`
	VehicleID    string  `json:"vehicle_id" binding:"required,uuid"`
	TrailerID    *string `json:"trailer_id" binding:"omitempty,uuid"`
	DocketNumber string  `json:"docket_number" binding:"required,max=50"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	PickupTime   *string `json:"pickup_time"`
	DeliveryTime *string `json:"delivery_time"`
}

type UpdateJobLineRequest struct {
	ProductID    string  `json:"product_id" binding:"required,uuid"`
	DriverID     string  `json:"driver_id" binding:"required,uuid"`
	VehicleID    string  `json:"vehicle_id" binding:"required,uuid"`
	TrailerID    *string `json:"trailer_id" binding:"omitempty,uuid"`
	DocketNumber string  `json:"docket_number" binding:"required,max=50"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	PickupTime   *string `json:"pickup_time"`
	DeliveryTime *string `json:"delivery_time"`
}

type JobLineResponse struct {
	ID           string  `json:"id"`
	JobID        string  `json:"job_id"`
	ProductID    string  `json:"product_id"`
	DriverID     string  `json:"driver_id"`
	VehicleID    string  `json:"vehicle_id"`
	TrailerID    *string `json:"trailer_id,omitempty"`
	DocketNumber string  `json:"docket_number"`
	Quantity     float64 `json:"quantity"`
	PickupTime   *string `json:"pickup_time,omitempty"`
	DeliveryTime *string `json:"delivery_time,omitempty"`
}

type JobResponse struct {
	ID        string            `json:"id"`
	ShiftID   string            `json:"shift_id"`
	ClientID  *string           `json:"client_id,omitempty"`
	JobDate   string            `json:"job_date"`
	Reference string            `json:"reference"`
	Status    string            `json:"status"`
	Notes     *string           `json:"notes,omitempty"`
	Lines     []JobLineResponse `json:"lines"`
}
