package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lippel/helpdesk-gateway/internal/domain"
)

type stubReferenceStore struct {
	sectors     []domain.Sector
	statuses    []domain.Status
	err         error
	sectorCalls int
	statusCalls int
}

func (s *stubReferenceStore) ListSectors(_ context.Context) ([]domain.Sector, error) {
	s.sectorCalls++
	return s.sectors, s.err
}

func (s *stubReferenceStore) ListStatuses(_ context.Context) ([]domain.Status, error) {
	s.statusCalls++
	return s.statuses, s.err
}

type stubReferenceCache struct {
	sectors  []domain.Sector
	statuses []domain.Status
	setCalls int
}

func (c *stubReferenceCache) GetSectors(_ context.Context) ([]domain.Sector, bool) {
	return c.sectors, c.sectors != nil
}

func (c *stubReferenceCache) SetSectors(_ context.Context, sectors []domain.Sector) {
	c.setCalls++
	c.sectors = sectors
}

func (c *stubReferenceCache) GetStatuses(_ context.Context) ([]domain.Status, bool) {
	return c.statuses, c.statuses != nil
}

func (c *stubReferenceCache) SetStatuses(_ context.Context, statuses []domain.Status) {
	c.setCalls++
	c.statuses = statuses
}

func TestSectorsColdCacheFallsThroughAndWarms(t *testing.T) {
	store := &stubReferenceStore{sectors: []domain.Sector{{ID: 1, Nome: "TI"}}}
	cache := &stubReferenceCache{}
	svc := NewReferenceService(store, cache)

	sectors, err := svc.Sectors(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sectors) != 1 || sectors[0].Nome != "TI" {
		t.Fatalf("unexpected sectors: %v", sectors)
	}
	if store.sectorCalls != 1 {
		t.Fatalf("expected one store call, got %d", store.sectorCalls)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected cache warm-up")
	}

	if _, err := svc.Sectors(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.sectorCalls != 1 {
		t.Fatalf("warm cache must not hit the store again")
	}
}

func TestStatusesStoreErrorPropagates(t *testing.T) {
	store := &stubReferenceStore{err: errors.New("down")}
	svc := NewReferenceService(store, &stubReferenceCache{})

	if _, err := svc.Statuses(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSectorsWithoutCache(t *testing.T) {
	store := &stubReferenceStore{sectors: []domain.Sector{{ID: 2, Nome: "RH"}}}
	svc := NewReferenceService(store, nil)

	if _, err := svc.Sectors(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.sectorCalls != 1 {
		t.Fatalf("expected store call")
	}
}
