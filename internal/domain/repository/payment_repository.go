package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment record data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.PaymentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentRecord, error)
	List(ctx context.Context, organizationID uuid.UUID, params *PaymentFilterParams) ([]entity.PaymentRecord, int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination    *pagination.PaginationParams
	PaymentMethod *enum.PaymentMethod
	Status        *enum.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// OrderRepository defines the interface for order fact data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, organizationID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// AppointmentRepository defines the interface for appointment fact data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status enum.AppointmentStatus) error
	List(ctx context.Context, organizationID uuid.UUID, params *AppointmentFilterParams) ([]entity.Appointment, int64, error)
}

// AppointmentFilterParams contains filtering parameters for appointment queries
type AppointmentFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.AppointmentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
