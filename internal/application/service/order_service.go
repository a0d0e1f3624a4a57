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

// OrderService records order facts into the order & payment ledger
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	OrganizationID uuid.UUID
	OrderDate      time.Time
	Status         enum.OrderStatus
	PaymentMethod  enum.PaymentMethod
	Total          decimal.Decimal
	CustomerName   string
}

// CreateOrder records an order fact
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if input.Total.IsNegative() {
		return nil, apperror.NewInvalidAmountError("Order total must not be negative")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	status := input.Status
	if status == "" {
		status = enum.OrderStatusPending
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &entity.Order{
		OrganizationID: input.OrganizationID,
		OrderDate:      orderDate,
		Status:         status,
		PaymentMethod:  input.PaymentMethod,
		Total:          input.Total,
		CustomerName:   input.CustomerName,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateOrderStatus transitions an order's status. Refunds stay in the
// ledger as refunded orders rather than being deleted, so the daily stats
// keep counting them.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, organizationID, id uuid.UUID, status enum.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.OrganizationID != organizationID {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, organizationID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Normalize()

	orders, total, err := s.orderRepo.List(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(orders, total, params.Pagination), nil
}
