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
)

// AppointmentService records appointment facts counted in daily stats
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointmentRepo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointmentRepo: appointmentRepo}
}

// CreateAppointmentInput represents the create appointment input
type CreateAppointmentInput struct {
	OrganizationID uuid.UUID
	ScheduledAt    time.Time
	CustomerName   string
}

// CreateAppointment records an appointment fact
func (s *AppointmentService) CreateAppointment(ctx context.Context, input *CreateAppointmentInput) (*entity.Appointment, error) {
	if input.ScheduledAt.IsZero() {
		return nil, apperror.NewBadRequestError("Scheduled time is required")
	}

	appointment := &entity.Appointment{
		OrganizationID: input.OrganizationID,
		ScheduledAt:    input.ScheduledAt,
		Status:         enum.AppointmentStatusScheduled,
		CustomerName:   input.CustomerName,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// UpdateAppointmentStatus transitions an appointment's status
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, organizationID, id uuid.UUID, status enum.AppointmentStatus) error {
	if !status.IsValid() {
		return apperror.NewBadRequestError("Invalid appointment status")
	}
	return s.appointmentRepo.UpdateStatus(ctx, organizationID, id, status)
}

// ListAppointments retrieves appointments with filtering and pagination
func (s *AppointmentService) ListAppointments(ctx context.Context, organizationID uuid.UUID, params *repository.AppointmentFilterParams) (*pagination.PaginatedResult[entity.Appointment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Normalize()

	appointments, total, err := s.appointmentRepo.List(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(appointments, total, params.Pagination), nil
}
