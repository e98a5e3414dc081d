package invoice

type CreateInvoiceRequest struct {
	JobID    string `json:"job_id" binding:"required,uuid"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

type AddInvoiceItemRequest struct {
	JobLineID    *string `json:"job_line_id" binding:"omitempty,uuid"`
	ProductName  string  `json:"product_name" binding:"required,max=150"`
	DocketNumber *string `json:"docket_number" binding:"omitempty,max=50"`
	Qty          float64 `json:"qty" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
}

type UpdateInvoiceItemRequest struct {
	ProductName  string  `json:"product_name" binding:"required,max=150"`
	DocketNumber *string `json:"docket_number" binding:"omitempty,max=50"`
	Qty          float64 `json:"qty" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
}

type InvoiceItemResponse struct {
	ID           string  `json:"id"`
	InvoiceID    string  `json:"invoice_id"`
	JobLineID    *string `json:"job_line_id,omitempty"`
	ProductName  string  `json:"product_name"`
	DocketNumber *string `json:"docket_number,omitempty"`
	Qty          float64 `json:"qty"`
	UnitPrice    float64 `json:"unit_price"`
	Amount       float64 `json:"amount"`
}

type InvoiceResponse struct {
	ID          string                `json:"id"`
	JobID       string                `json:"job_id"`
	ClientID    *string               `json:"client_id,omitempty"`
	Number      string                `json:"number"`
	Status      string                `json:"status"`
	Currency    string                `json:"currency"`
	TotalAmount float64               `json:"total_amount"`
	IssuedAt    *string               `json:"issued_at,omitempty"`
	Items       []InvoiceItemResponse `json:"items"`
}
