package request

import "github.com/shopspring/decimal"

// CreatePaymentRequest represents a request to record a payment fact
type CreatePaymentRequest struct {
	OrderID       *string         `json:"order_id" binding:"omitempty,uuid"`
	AppointmentID *string         `json:"appointment_id" binding:"omitempty,uuid"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" binding:"omitempty,max=10"`
	Status        string          `json:"status"`
	PaidAt        *string         `json:"paid_at" binding:"omitempty"`
}

// CreateOrderRequest represents a request to record an order fact
type CreateOrderRequest struct {
	OrderDate     *string         `json:"order_date" binding:"omitempty"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customer_name" binding:"max=255"`
}

// UpdateOrderStatusRequest represents an order status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAppointmentRequest represents a request to record an appointment
type CreateAppointmentRequest struct {
	ScheduledAt  string `json:"scheduled_at" binding:"required"`
	CustomerName string `json:"customer_name" binding:"max=255"`
}

// UpdateAppointmentStatusRequest represents an appointment status transition
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
