package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"github.com/salonkit/settlement-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentService records payment facts into the order & payment ledger
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	OrganizationID uuid.UUID
	OrderID        *uuid.UUID
	AppointmentID  *uuid.UUID
	PaymentMethod  enum.PaymentMethod
	Amount         decimal.Decimal
	Currency       string
	Status         enum.PaymentStatus
	ReceivedBy     *uuid.UUID
	PaidAt         *time.Time
}

// CreatePayment records a payment fact. Completed payments feed the daily
// stats aggregator for the day they were paid on.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.PaymentRecord, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Payment amount must be greater than zero")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	status := input.Status
	if status == "" {
		status = enum.PaymentStatusCompleted
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment status")
	}

	paidAt := input.PaidAt
	if paidAt == nil && status == enum.PaymentStatusCompleted {
		now := time.Now()
		paidAt = &now
	}

	payment := &entity.PaymentRecord{
		OrganizationID: input.OrganizationID,
		OrderID:        input.OrderID,
		AppointmentID:  input.AppointmentID,
		PaymentMethod:  input.PaymentMethod,
		Amount:         input.Amount,
		Currency:       input.Currency,
		Status:         status,
		ReceivedBy:     input.ReceivedBy,
		PaidAt:         paidAt,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPayment retrieves a payment record by ID
func (s *PaymentService) GetPayment(ctx context.Context, organizationID, id uuid.UUID) (*entity.PaymentRecord, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.OrganizationID != organizationID {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments retrieves payment records with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, organizationID uuid.UUID, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.PaymentRecord], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Normalize()

	payments, total, err := s.paymentRepo.List(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(payments, total, params.Pagination), nil
}
