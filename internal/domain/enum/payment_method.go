package enum

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodLinePay    PaymentMethod = "line_pay"
	PaymentMethodTransfer   PaymentMethod = "transfer"
	PaymentMethodOther      PaymentMethod = "other"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodLinePay, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// RevenueChannel is the reporting bucket a payment method maps into
type RevenueChannel string

const (
	RevenueChannelCash    RevenueChannel = "cash"
	RevenueChannelCard    RevenueChannel = "card"
	RevenueChannelLinePay RevenueChannel = "line_pay"
	RevenueChannelOther   RevenueChannel = "other"
)

// Channel maps a payment method to exactly one revenue channel.
// Credit and debit cards share the card bucket; transfers fall into other.
func (m PaymentMethod) Channel() RevenueChannel {
	switch m {
	case PaymentMethodCash:
		return RevenueChannelCash
	case PaymentMethodCreditCard, PaymentMethodDebitCard:
		return RevenueChannelCard
	case PaymentMethodLinePay:
		return RevenueChannelLinePay
	default:
		return RevenueChannelOther
	}
}
