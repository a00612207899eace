package models

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
)

type Address struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=100"`
	AddressLine1 string `json:"address_line1" validate:"required,min=5,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"max=200"`
	City         string `json:"city" validate:"required,min=2,max=100"`
	State        string `json:"state" validate:"required,min=2,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,min=3,max=20"`
	Country      string `json:"country" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
}

type CheckoutRequest struct {
	ShippingAddress       Address       `json:"shipping_address" validate:"required"`
	BillingAddress        *Address      `json:"billing_address,omitempty" validate:"required_if=UseShippingForBilling false,omitempty"`
	UseShippingForBilling bool          `json:"use_shipping_for_billing"`
	PaymentMethod         PaymentMethod `json:"payment_method" validate:"required,oneof=razorpay cod"`
}

// PaymentOrder is the razorpay order created by the payment service. Amount is in paise.
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

type PaymentVerification struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type PaymentVerificationResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// CheckoutResponse carries either a razorpay order to open in the browser
// or, for cash on delivery, the created order.
type CheckoutResponse struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	Payment       *PaymentOrder `json:"payment,omitempty"`
	Order         *Order        `json:"order,omitempty"`
	Total         float64       `json:"total"`
}
