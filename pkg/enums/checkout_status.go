package enums

import "fmt"

// CheckoutStatus is the step an order draft is waiting on.
type CheckoutStatus string

const (
	CheckoutStatusAwaitingForm          CheckoutStatus = "awaiting_form"
	CheckoutStatusAwaitingPaymentMethod CheckoutStatus = "awaiting_payment_method"
	CheckoutStatusAwaitingConfirmation  CheckoutStatus = "awaiting_confirmation"
	CheckoutStatusConfirming            CheckoutStatus = "confirming"
	CheckoutStatusConfirmed             CheckoutStatus = "confirmed"
)

var validCheckoutStatuses = []CheckoutStatus{
	CheckoutStatusAwaitingForm,
	CheckoutStatusAwaitingPaymentMethod,
	CheckoutStatusAwaitingConfirmation,
	CheckoutStatusConfirming,
	CheckoutStatusConfirmed,
}

// String implements fmt.Stringer.
func (c CheckoutStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStatus.
func (c CheckoutStatus) IsValid() bool {
	for _, candidate := range validCheckoutStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStatus converts raw input into a CheckoutStatus.
func ParseCheckoutStatus(value string) (CheckoutStatus, error) {
	for _, candidate := range validCheckoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout status %q", value)
}
