package vehicle

type CreateVehicleRequest struct {
	Rego      string `json:"rego" binding:"required"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	IsTrailer bool   `json:"is_trailer"`
	Odometer  *int64 `json:"odometer"`
}

type UpdateVehicleRequest struct {
	Rego      string `json:"rego" binding:"required"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	IsTrailer bool   `json:"is_trailer"`
	Odometer  *int64 `json:"odometer"`
	Active    *bool  `json:"active"`
}

type VehicleResponse struct {
	ID        string `json:"id"`
	Rego      string `json:"rego"`
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	IsTrailer bool   `json:"is_trailer"`
	Odometer  *int64 `json:"odometer,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateServiceRecordRequest struct {
	ServicedAt string  `json:"serviced_at" binding:"required"`
	Odometer   *int64  `json:"odometer"`
	Notes      *string `json:"notes"`
	NextDue    *string `json:"next_due"`
}

type ServiceRecordResponse struct {
	ID         string  `json:"id"`
	VehicleID  string  `json:"vehicle_id"`
	ServicedAt string  `json:"serviced_at"`
	Odometer   *int64  `json:"odometer,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	NextDue    *string `json:"next_due,omitempty"`
}
