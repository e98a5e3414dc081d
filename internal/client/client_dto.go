package client

type CreateClientRequest struct {
	Name           string  `json:"name" binding:"required"`
	ContactEmail   *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	BillingAddress *string `json:"billing_address"`
}

type UpdateClientRequest struct {
	Name           string  `json:"name" binding:"required"`
	ContactEmail   *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	BillingAddress *string `json:"billing_address"`
}

type ClientResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ContactEmail   *string `json:"contact_email,omitempty"`
	ContactPhone   *string `json:"contact_phone,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
