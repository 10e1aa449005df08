package enums

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "en attente"
	PaymentStatusPaid    PaymentStatus = "payé"
)
