package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/application/service"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/internal/presentation/http/dto/request"
	"github.com/salonkit/settlement-api/internal/presentation/http/dto/response"
	"github.com/salonkit/settlement-api/pkg/pagination"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles recording a payment fact
func (h *PaymentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	organizationID := GetOrganizationID(c)
	if userID == nil || organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreatePaymentInput{
		OrganizationID: *organizationID,
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         enum.PaymentStatus(req.Status),
		ReceivedBy:     userID,
	}

	if req.OrderID != nil {
		orderID, err := uuid.Parse(*req.OrderID)
		if err != nil {
			response.BadRequest(c, "Invalid order_id")
			return
		}
		input.OrderID = &orderID
	}
	if req.AppointmentID != nil {
		appointmentID, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			response.BadRequest(c, "Invalid appointment_id")
			return
		}
		input.AppointmentID = &appointmentID
	}
	if req.PaidAt != nil {
		paidAt, err := parseTimestamp(*req.PaidAt)
		if err != nil {
			response.BadRequest(c, "Invalid paid_at, expected RFC 3339 timestamp")
			return
		}
		input.PaidAt = &paidAt
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// List handles listing payment records
func (h *PaymentHandler) List(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.PaymentFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if methodStr := c.Query("payment_method"); methodStr != "" {
		method := enum.PaymentMethod(methodStr)
		if !method.IsValid() {
			response.BadRequest(c, "Invalid payment_method")
			return
		}
		params.PaymentMethod = &method
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.PaymentStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		end = end.Add(24 * time.Hour)
		params.EndDate = &end
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), *organizationID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles recording an order fact
func (h *OrderHandler) Create(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		OrganizationID: *organizationID,
		Status:         enum.OrderStatus(req.Status),
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		Total:          req.Total,
		CustomerName:   req.CustomerName,
	}

	if req.OrderDate != nil {
		orderDate, err := parseTimestamp(*req.OrderDate)
		if err != nil {
			response.BadRequest(c, "Invalid order_date, expected RFC 3339 timestamp")
			return
		}
		input.OrderDate = orderDate
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order recorded successfully", order)
}

// UpdateStatus handles transitioning an order's status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), *organizationID, id, enum.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.OrderStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		end = end.Add(24 * time.Hour)
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), *organizationID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create handles recording an appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	scheduledAt, err := parseTimestamp(req.ScheduledAt)
	if err != nil {
		response.BadRequest(c, "Invalid scheduled_at, expected RFC 3339 timestamp")
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), &service.CreateAppointmentInput{
		OrganizationID: *organizationID,
		ScheduledAt:    scheduledAt,
		CustomerName:   req.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment recorded successfully", appointment)
}

// UpdateStatus handles transitioning an appointment's status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.appointmentService.UpdateAppointmentStatus(c.Request.Context(), *organizationID, id, enum.AppointmentStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.AppointmentStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		end = end.Add(24 * time.Hour)
		params.EndDate = &end
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), *organizationID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved successfully", result)
}
