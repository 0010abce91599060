package entity

// PaymentMethod is recorded on the order but never charged.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGcash PaymentMethod = "gcash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentGcash
}
