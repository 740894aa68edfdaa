package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/application/types"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid menu item input")
	// ErrPersistence signals the catalog store rejected the operation.
	ErrPersistence = errors.New("menu persistence failed")
)

var _ ports.Service = (*Service)(nil)

// Service implements the menu catalog use cases on top of a repository.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateMenuItem validates and stores a new catalog entry.
func (s *Service) CreateMenuItem(ctx context.Context, input types.MenuItemInput) (*types.MenuItemProjection, error) {
	item, err := domain.NewMenuItem(input.Name, input.Description, input.Price, domain.Category(input.Category), input.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	result, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// UpdateMenuItem replaces a catalog entry. Orders keep their own snapshots,
// so edits never rewrite placed orders.
func (s *Service) UpdateMenuItem(ctx context.Context, id int64, input types.MenuItemInput) (*types.MenuItemProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	item, err := domain.NewMenuItem(input.Name, input.Description, input.Price, domain.Category(input.Category), input.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	item.ID = id
	if input.Available != nil {
		item.Available = *input.Available
	} else {
		item.Available = current.Entity.Available
	}
	result, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetMenuItem loads one catalog entry.
func (s *Service) GetMenuItem(ctx context.Context, id int64) (*types.MenuItemProjection, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ListMenu returns the menu, optionally narrowed to one category.
func (s *Service) ListMenu(ctx context.Context, category string) ([]*types.MenuItemProjection, error) {
	var filter domain.Category
	if strings.TrimSpace(category) != "" {
		parsed, err := domain.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		filter = parsed
	}
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// DeleteMenuItem removes a catalog entry.
func (s *Service) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
