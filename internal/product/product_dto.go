package product

type CreateProductRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit" binding:"required,oneof=TONNE LOAD HOUR KM EACH"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit" binding:"required,oneof=TONNE LOAD HOUR KM EACH"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	Active    *bool   `json:"active"`
}

type ProductResponse struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
