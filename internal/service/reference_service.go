package service

import (
	"context"

	"github.com/lippel/helpdesk-gateway/internal/domain"
)

// ReferenceStore reads the lookup tables from the ticket store.
type ReferenceStore interface {
	ListSectors(ctx context.Context) ([]domain.Sector, error)
	ListStatuses(ctx context.Context) ([]domain.Status, error)
}

// ReferenceCache is the cached view of the lookup tables. Implementations
// are best-effort; misses fall through to the store.
type ReferenceCache interface {
	GetSectors(ctx context.Context) ([]domain.Sector, bool)
	SetSectors(ctx context.Context, sectors []domain.Sector)
	GetStatuses(ctx context.Context) ([]domain.Status, bool)
	SetStatuses(ctx context.Context, statuses []domain.Status)
}

// ReferenceService serves sector and status lists, cache-first.
type ReferenceService struct {
	store ReferenceStore
	cache ReferenceCache
}

// NewReferenceService constructs the service. Cache may be nil.
func NewReferenceService(store ReferenceStore, cache ReferenceCache) *ReferenceService {
	return &ReferenceService{store: store, cache: cache}
}

// Sectors returns the sector lookup table.
func (s *ReferenceService) Sectors(ctx context.Context) ([]domain.Sector, error) {
	if s.cache != nil {
		if sectors, ok := s.cache.GetSectors(ctx); ok {
			return sectors, nil
		}
	}
	sectors, err := s.store.ListSectors(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetSectors(ctx, sectors)
	}
	return sectors, nil
}

// Statuses returns the status lookup table.
func (s *ReferenceService) Statuses(ctx context.Context) ([]domain.Status, error) {
	if s.cache != nil {
		if statuses, ok := s.cache.GetStatuses(ctx); ok {
			return statuses, nil
		}
	}
	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetStatuses(ctx, statuses)
	}
	return statuses, nil
}
