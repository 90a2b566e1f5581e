package crm

import (
	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// PoolKind classifies the pool construction
type PoolKind string

const (
	PoolKindInground    PoolKind = "inground"
	PoolKindAboveGround PoolKind = "above_ground"
	PoolKindSpa         PoolKind = "spa"
)

// Sanitizer is the pool's sanitation system
type Sanitizer string

const (
	SanitizerChlorine Sanitizer = "chlorine"
	SanitizerSalt     Sanitizer = "salt"
	SanitizerBromine  Sanitizer = "bromine"
)

// Pool describes the single pool at a property. A property has at most one
// pool; the persistence layer enforces this with a unique index on
// property_id.
type Pool struct {
	shared.BaseAggregateRoot
	PropertyID     uuid.UUID
	Kind           PoolKind
	Sanitizer      Sanitizer
	VolumeGallons  int
	Surface        string
	EquipmentNotes string
}

// NewPool creates the pool record for a property
func NewPool(propertyID uuid.UUID, kind PoolKind, sanitizer Sanitizer, volumeGallons int) (*Pool, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("property id cannot be empty")
	}
	if err := validatePoolKind(kind); err != nil {
		return nil, err
	}
	if err := validateSanitizer(sanitizer); err != nil {
		return nil, err
	}
	if err := validateVolume(volumeGallons); err != nil {
		return nil, err
	}

	return &Pool{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Kind:              kind,
		Sanitizer:         sanitizer,
		VolumeGallons:     volumeGallons,
	}, nil
}

// Update updates the pool's characteristics
func (p *Pool) Update(kind PoolKind, sanitizer Sanitizer, volumeGallons int) error {
	if err := validatePoolKind(kind); err != nil {
		return err
	}
	if err := validateSanitizer(sanitizer); err != nil {
		return err
	}
	if err := validateVolume(volumeGallons); err != nil {
		return err
	}

	p.Kind = kind
	p.Sanitizer = sanitizer
	p.VolumeGallons = volumeGallons
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetDetails sets surface and equipment notes
func (p *Pool) SetDetails(surface, equipmentNotes string) {
	p.Surface = surface
	p.EquipmentNotes = equipmentNotes
	p.Touch()
	p.IncrementVersion()
}

func validatePoolKind(kind PoolKind) error {
	switch kind {
	case PoolKindInground, PoolKindAboveGround, PoolKindSpa:
		return nil
	}
	return shared.NewValidationError("invalid pool kind: %s", kind)
}

func validateSanitizer(s Sanitizer) error {
	switch s {
	case SanitizerChlorine, SanitizerSalt, SanitizerBromine:
		return nil
	}
	return shared.NewValidationError("invalid sanitizer: %s", s)
}

func validateVolume(gallons int) error {
	if gallons <= 0 {
		return shared.NewValidationError("volume must be positive")
	}
	if gallons > 1_000_000 {
		return shared.NewValidationError("volume is implausibly large")
	}
	return nil
}
