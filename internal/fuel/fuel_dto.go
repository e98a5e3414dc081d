package fuel

type CreateFuelPurchaseRequest struct {
	VehicleID     string  `json:"vehicle_id" binding:"required,uuid"`
	DriverID      *string `json:"driver_id" binding:"omitempty,uuid"`
	FilledAt      string  `json:"filled_at" binding:"required"`
	Litres        float64 `json:"litres" binding:"required,gt=0"`
	PricePerLitre float64 `json:"price_per_litre" binding:"required,gt=0"`
	Odometer      *int64  `json:"odometer" binding:"omitempty,gte=0"`
}

type UpdateFuelPurchaseRequest struct {
	DriverID      *string `json:"driver_id" binding:"omitempty,uuid"`
	FilledAt      string  `json:"filled_at" binding:"required"`
	Litres        float64 `json:"litres" binding:"required,gt=0"`
	PricePerLitre float64 `json:"price_per_litre" binding:"required,gt=0"`
	Odometer      *int64  `json:"odometer" binding:"omitempty,gte=0"`
}

type FuelPurchaseResponse struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicle_id"`
	DriverID      *string `json:"driver_id,omitempty"`
	FilledAt      string  `json:"filled_at"`
	Litres        float64 `json:"litres"`
	PricePerLitre float64 `json:"price_per_litre"`
	TotalCost     float64 `json:"total_cost"`
	Odometer      *int64  `json:"odometer,omitempty"`
}
