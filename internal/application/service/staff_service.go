package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/domain/entity"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/pkg/apperror"
	"github.com/petrodesk/station-api/pkg/pagination"
)

// StaffService handles station staff operations
type StaffService struct {
	staffRepo repository.StaffRepository
	userRepo  repository.UserRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository, userRepo repository.UserRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo, userRepo: userRepo}
}

// StaffInput represents staff create/update fields
type StaffInput struct {
	UserID    *uuid.UUID
	FirstName string
	LastName  string
	Phone     *string
	Position  string
	Active    *bool
}

// CreateStaff creates a new staff member, optionally linked to a user account
func (s *StaffService) CreateStaff(ctx context.Context, input *StaffInput) (*entity.Staff, error) {
	if input.UserID != nil {
		user, err := s.userRepo.GetByID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewNotFoundError("User")
		}
		existing, err := s.staffRepo.GetByUserID(ctx, *input.UserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("User is already linked to a staff member")
		}
	}

	staff := &entity.Staff{
		UserID:    input.UserID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Position:  input.Position,
		Active:    true,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return staff, nil
}

// UpdateStaff updates a staff member's details
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, input *StaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	staff.FirstName = input.FirstName
	staff.LastName = input.LastName
	staff.Phone = input.Phone
	staff.Position = input.Position
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff member
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}

// ListStaff retrieves staff members with pagination and search
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(staff,
		pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
