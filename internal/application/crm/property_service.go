package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/crm"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// PropertyService handles serviced-address operations
type PropertyService struct {
	propertyRepo crm.PropertyRepository
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo crm.PropertyRepository,
	customerRepo crm.CustomerRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateProperty adds a property to an existing customer
func (s *PropertyService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	property, err := crm.NewProperty(req.CustomerID, req.Street, req.City, req.State, req.Zip)
	if err != nil {
		return nil, err
	}
	if req.AccessNotes != "" || req.GateCode != "" {
		property.SetAccess(req.AccessNotes, req.GateCode)
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to create property")
	}

	s.logger.Info("Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("customer_id", req.CustomerID.String()))

	return ToPropertyResponse(property), nil
}

// GetProperty returns one property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("property")
	}
	return ToPropertyResponse(property), nil
}

// ListPropertiesByCustomer returns all properties of a customer
func (s *PropertyService) ListPropertiesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*PropertyResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, shared.NewNotFoundError("customer")
	}

	properties, err := s.propertyRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to list properties", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to list properties")
	}

	items := make([]*PropertyResponse, 0, len(properties))
	for _, property := range properties {
		items = append(items, ToPropertyResponse(property))
	}
	return items, nil
}

// UpdateProperty updates a property's address and access details
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError("property")
	}

	if req.Street != nil || req.City != nil || req.State != nil || req.Zip != nil {
		street := property.Street
		city := property.City
		state := property.State
		zip := property.Zip
		if req.Street != nil {
			street = *req.Street
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.Zip != nil {
			zip = *req.Zip
		}
		if err := property.Update(street, city, state, zip); err != nil {
			return nil, err
		}
	}

	if req.AccessNotes != nil || req.GateCode != nil {
		accessNotes := property.AccessNotes
		gateCode := property.GateCode
		if req.AccessNotes != nil {
			accessNotes = *req.AccessNotes
		}
		if req.GateCode != nil {
			gateCode = *req.GateCode
		}
		property.SetAccess(accessNotes, gateCode)
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to update property")
	}

	return ToPropertyResponse(property), nil
}

// DeleteProperty removes a property
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.propertyRepo.FindByID(ctx, id); err != nil {
		return shared.NewNotFoundError("property")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete property", zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to delete property")
	}

	s.logger.Info("Property deleted", zap.String("property_id", id.String()))

	return nil
}
