package gateway

import "context"

//go:generate mockgen -source port.go -destination mock_port.go -package gateway

// Provider is the payment gateway that hosts the checkout page.
// InitializeTransaction returns *RejectedError when the gateway answered
// without a success status and *HTTPError on a non-2xx response; any other
// error means no usable response was received.
type Provider interface {
	InitializeTransaction(ctx context.Context, req InitializeRequest) (InitializeResult, error)
}

type InitializeRequest struct {
	// Amount is in minor currency units and is forwarded unchanged.
	Amount      int64
	Email       string
	Currency    string
	CallbackURL string
	Metadata    Metadata
}

type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// OrderMetadata labels the order reference so that it comes back in the
// gateway's webhook and verification payloads.
func OrderMetadata(orderID string) Metadata {
	return Metadata{
		CustomFields: []CustomField{
			{
				DisplayName:  "Order ID",
				VariableName: "order_id",
				Value:        orderID,
			},
		},
	}
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}
