package driver

type CreateDriverRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	LicenceNumber string  `json:"licence_number" binding:"required"`
	Phone         *string `json:"phone"`
}

type UpdateDriverRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	LicenceNumber string  `json:"licence_number" binding:"required"`
	Phone         *string `json:"phone"`
	Active        *bool   `json:"active"`
}

type DriverResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	LicenceNumber string  `json:"licence_number"`
	Phone         *string `json:"phone,omitempty"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
