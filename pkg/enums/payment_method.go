package enums

// PaymentMethod enumerates the supported mobile money providers.
type PaymentMethod string

const (
	PaymentMethodOrangeMoney PaymentMethod = "OM"
	PaymentMethodWave        PaymentMethod = "WAVE"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodOrangeMoney, PaymentMethodWave:
		return true
	default:
		return false
	}
}
