package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/identity"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// AdminService manages admin accounts. Route-level middleware restricts
// these operations to owners.
type AdminService struct {
	adminRepo identity.AdminRepository
	logger    *zap.Logger
}

// NewAdminService creates a new admin management service
func NewAdminService(adminRepo identity.AdminRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		logger:    logger,
	}
}

// CreateAdmin creates a new admin account
func (s *AdminService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*AdminResponse, error) {
	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to check admin email", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create admin")
	}
	if exists {
		return nil, shared.NewConflictError("an admin with this email already exists")
	}

	admin, err := identity.NewAdmin(req.Email, req.FullName, req.Password, identity.AdminRole(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to save admin", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create admin")
	}

	s.logger.Info("Admin created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", string(admin.Role)))

	return ToAdminResponse(admin), nil
}

// GetAdmin returns one admin by ID
func (s *AdminService) GetAdmin(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("admin")
	}
	return ToAdminResponse(admin), nil
}

// ListAdmins returns admins matching the filter
func (s *AdminService) ListAdmins(ctx context.Context, filter AdminListFilter) (*AdminListResult, error) {
	domainFilter := identity.NewAdminFilter()
	domainFilter.Keyword = filter.Keyword
	domainFilter.Active = filter.Active
	if filter.Role != "" {
		role := identity.AdminRole(filter.Role)
		domainFilter.Role = &role
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	admins, total, err := s.adminRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("Failed to list admins", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list admins")
	}

	items := make([]*AdminResponse, 0, len(admins))
	for _, admin := range admins {
		items = append(items, ToAdminResponse(admin))
	}

	return &AdminListResult{
		Items:    items,
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.Limit(),
	}, nil
}

// UpdateAdmin updates an admin's name and optionally resets the password
func (s *AdminService) UpdateAdmin(ctx context.Context, id uuid.UUID, req UpdateAdminRequest) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("admin")
	}

	if req.FullName != nil {
		if err := admin.SetFullName(*req.FullName); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := admin.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to save admin", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update admin")
	}

	return ToAdminResponse(admin), nil
}

// DeactivateAdmin disables login for an admin. Admins cannot deactivate
// themselves; that would strand the account mid-session.
func (s *AdminService) DeactivateAdmin(ctx context.Context, actorID, id uuid.UUID) (*AdminResponse, error) {
	if actorID == id {
		return nil, shared.NewConflictError("cannot deactivate your own account")
	}

	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("admin")
	}

	if err := admin.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to save admin", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to deactivate admin")
	}

	s.logger.Info("Admin deactivated",
		zap.String("admin_id", id.String()),
		zap.String("actor_id", actorID.String()))

	return ToAdminResponse(admin), nil
}

// ActivateAdmin re-enables login for an admin
func (s *AdminService) ActivateAdmin(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("admin")
	}

	if err := admin.Activate(); err != nil {
		return nil, err
	}

	if err := s.adminRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to save admin", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to activate admin")
	}

	return ToAdminResponse(admin), nil
}
