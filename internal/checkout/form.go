package checkout

import "strings"

// Payment method tags accepted at checkout.
const (
	PaymentCreditCard     = "credit-card"
	PaymentDigitalWallet  = "digital-wallet"
	PaymentCashOnDelivery = "cash-on-delivery"
)

// Form is the checkout form as collected in the Editing state.
type Form struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod"`
}

// ValidationError lists the required fields that were empty or invalid.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks that every shipping field is filled and the payment
// method tag is known. It never touches the network.
func (f *Form) Validate() error {
	var missing []string
	for _, field := range []struct {
		name, value string
	}{
		{"fullName", f.FullName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"zipCode", f.ZipCode},
		{"country", f.Country},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	switch f.PaymentMethod {
	case PaymentCreditCard, PaymentDigitalWallet, PaymentCashOnDelivery:
	default:
		missing = append(missing, "paymentMethod")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
