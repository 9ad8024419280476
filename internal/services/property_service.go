package services

import (
	"context"
	"errors"

	"rentledger/internal/models"
	"rentledger/internal/repositories"

	"github.com/google/uuid"
)

var ErrPropertyNameRequired = errors.New("property name is required")

type PropertyService interface {
	Create(ctx context.Context, property *models.Property) error
	List(ctx context.Context) ([]*models.Property, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
}

func NewPropertyService(propertyRepo repositories.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

func (s *propertyService) Create(ctx context.Context, property *models.Property) error {
	if property.Name == "" {
		return ErrPropertyNameRequired
	}
	property.ID = uuid.New()
	return s.propertyRepo.Create(ctx, property)
}

func (s *propertyService) List(ctx context.Context) ([]*models.Property, error) {
	return s.propertyRepo.List(ctx)
}
