package payment

// InitializeRequest is the checkout payload posted by the POS client.
// Amount is in minor currency units and is not converted.
type InitializeRequest struct {
	Amount      int64  `json:"amount" validate:"gt=0"`
	Email       string `json:"email" validate:"required"`
	Currency    string `json:"currency" validate:"required"`
	OrderID     string `json:"orderId" validate:"required"`
	CallbackURL string `json:"callbackUrl" validate:"required"`
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}
