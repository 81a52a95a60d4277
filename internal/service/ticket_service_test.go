package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/lippel/helpdesk-gateway/internal/authz"
	"github.com/lippel/helpdesk-gateway/internal/domain"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

type stubVerifier struct{ userID string }

func (s stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return s.userID, nil
}

type stubProfiles struct {
	profile *domain.Profile
}

func (s stubProfiles) Profile(_ context.Context, _, _ string) (*domain.Profile, error) {
	if s.profile == nil {
		return nil, util.NewNotFound("perfil de usuário", nil)
	}
	return s.profile, nil
}

type recordingStore struct {
	listCalls   int
	insertCalls int
	lastScope   domain.Scope
	lastTicket  domain.Ticket
}

func (r *recordingStore) ListTickets(_ context.Context, _ string, scope domain.Scope) ([]domain.Ticket, error) {
	r.listCalls++
	r.lastScope = scope
	return []domain.Ticket{}, nil
}

func (r *recordingStore) InsertTicket(_ context.Context, _ string, ticket domain.Ticket) (*domain.Ticket, error) {
	r.insertCalls++
	r.lastTicket = ticket
	created := ticket
	created.ID = 99
	return &created, nil
}

type recordingUpdater struct {
	calls  int
	lastID int64
}

func (r *recordingUpdater) UpdateTicketStatus(_ context.Context, id int64, statusID int) (*domain.Ticket, error) {
	r.calls++
	r.lastID = id
	return &domain.Ticket{ID: id, StatusID: statusID}, nil
}

func newTestService(profile *domain.Profile, store TicketStore, updater authz.StatusUpdater) *TicketService {
	policy := authz.NewPolicy(stubVerifier{userID: "u1"}, stubProfiles{profile: profile}, updater)
	return NewTicketService(TicketDependencies{
		Store:           store,
		Policy:          policy,
		DefaultStatusID: 1,
	})
}

func validInput() CreateTicketInput {
	return CreateTicketInput{
		Nome:       "Ana",
		Setor:      "TI",
		Problema:   "Impressora travada",
		Prioridade: "alta",
		SetorID:    IntInput{Value: 2, Raw: "2", Present: true, Valid: true},
	}
}

func cred() authz.Credential {
	return authz.Credential{Token: "tok", UserID: "u1"}
}

func TestCreateMissingFieldsNamesThemAndSkipsStore(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, store, &recordingUpdater{})

	input := validInput()
	input.Nome = ""
	input.Prioridade = ""

	_, err := svc.Create(context.Background(), cred(), input)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	de := util.ToDomainError(err)
	if de.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %s", de.Code)
	}
	required, _ := de.Details["required"].([]string)
	if !reflect.DeepEqual(required, []string{"nome", "prioridade"}) {
		t.Fatalf("expected exactly the missing fields, got %v", required)
	}
	received, _ := de.Details["received"].(map[string]any)
	if received == nil {
		t.Fatalf("expected received echo")
	}
	if store.insertCalls != 0 {
		t.Fatalf("store must not be called on invalid input")
	}
}

func TestCreateMissingSectorID(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, store, &recordingUpdater{})

	input := validInput()
	input.SetorID = IntInput{}

	_, err := svc.Create(context.Background(), cred(), input)
	de := util.ToDomainError(err)
	if de == nil || de.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	required, _ := de.Details["required"].([]string)
	if !reflect.DeepEqual(required, []string{"setor_id"}) {
		t.Fatalf("expected [setor_id], got %v", required)
	}
	if store.insertCalls != 0 {
		t.Fatalf("store must not be called")
	}
}

func TestCreateNonNumericSectorID(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, store, &recordingUpdater{})

	input := validInput()
	input.SetorID = IntInput{Raw: "TI", Present: true}

	_, err := svc.Create(context.Background(), cred(), input)
	de := util.ToDomainError(err)
	if de == nil || de.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	invalid, _ := de.Details["invalid"].([]string)
	if !reflect.DeepEqual(invalid, []string{"setor_id"}) {
		t.Fatalf("expected invalid [setor_id], got %v", invalid)
	}
	if store.insertCalls != 0 {
		t.Fatalf("store must not be called")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, store, &recordingUpdater{})

	created, err := svc.Create(context.Background(), cred(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastTicket.Interferencia != domain.InterferenciaNone {
		t.Fatalf("expected default interferencia, got %q", store.lastTicket.Interferencia)
	}
	if store.lastTicket.StatusID != 1 {
		t.Fatalf("expected default status 1, got %d", store.lastTicket.StatusID)
	}
	if store.lastTicket.CreatedAt == nil {
		t.Fatalf("expected server-assigned created_at")
	}
	if created.ID != 99 {
		t.Fatalf("expected store-assigned id, got %d", created.ID)
	}
}

func TestCreateHonorsExplicitStatus(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, store, &recordingUpdater{})

	input := validInput()
	input.StatusID = IntInput{Value: 4, Raw: "4", Present: true, Valid: true}
	input.Interferencia = "rede"

	if _, err := svc.Create(context.Background(), cred(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastTicket.StatusID != 4 {
		t.Fatalf("expected status 4, got %d", store.lastTicket.StatusID)
	}
	if store.lastTicket.Interferencia != "rede" {
		t.Fatalf("explicit interferencia must be kept")
	}
}

func TestListUsesSectorScope(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 7}, store, &recordingUpdater{})

	if _, err := svc.List(context.Background(), cred()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastScope.All {
		t.Fatalf("non-admin must be sector-scoped")
	}
	if store.lastScope.SetorID != 7 {
		t.Fatalf("expected sector 7, got %d", store.lastScope.SetorID)
	}
}

func TestListAdminScope(t *testing.T) {
	store := &recordingStore{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 7, IsAdmin: true}, store, &recordingUpdater{})

	if _, err := svc.List(context.Background(), cred()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.lastScope.All {
		t.Fatalf("admin must see all tickets")
	}
}

func TestUpdateStatusRequiresStatusID(t *testing.T) {
	updater := &recordingUpdater{}
	svc := newTestService(&domain.Profile{UserID: "u1", IsAdmin: true}, &recordingStore{}, updater)

	_, err := svc.UpdateStatus(context.Background(), cred(), "42", IntInput{})
	de := util.ToDomainError(err)
	if de == nil || de.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if updater.calls != 0 {
		t.Fatalf("store must not be called without status_id")
	}
}

func TestUpdateStatusForbiddenForNonAdmin(t *testing.T) {
	updater := &recordingUpdater{}
	svc := newTestService(&domain.Profile{UserID: "u1", SetorID: 2}, &recordingStore{}, updater)

	_, err := svc.UpdateStatus(context.Background(), cred(), "42", IntInput{Value: 3, Raw: "3", Present: true, Valid: true})
	de := util.ToDomainError(err)
	if de == nil || de.Code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if updater.calls != 0 {
		t.Fatalf("elevated store must stay untouched for non-admins")
	}
}

func TestUpdateStatusAdminSucceeds(t *testing.T) {
	updater := &recordingUpdater{}
	svc := newTestService(&domain.Profile{UserID: "u1", IsAdmin: true}, &recordingStore{}, updater)

	ticket, err := svc.UpdateStatus(context.Background(), cred(), "42", IntInput{Value: 3, Raw: "3", Present: true, Valid: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.StatusID != 3 {
		t.Fatalf("expected status 3, got %d", ticket.StatusID)
	}
	if updater.lastID != 42 {
		t.Fatalf("expected id 42, got %d", updater.lastID)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	updater := &recordingUpdater{}
	svc := newTestService(&domain.Profile{UserID: "u1", IsAdmin: true}, &recordingStore{}, updater)

	statusID := IntInput{Value: 3, Raw: "3", Present: true, Valid: true}
	first, err := svc.UpdateStatus(context.Background(), cred(), "42", statusID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.UpdateStatus(context.Background(), cred(), "42", statusID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.StatusID != second.StatusID {
		t.Fatalf("repeated update must be last-write-wins")
	}
}

func TestUpdateStatusNonNumericID(t *testing.T) {
	svc := newTestService(&domain.Profile{UserID: "u1", IsAdmin: true}, &recordingStore{}, &recordingUpdater{})

	_, err := svc.UpdateStatus(context.Background(), cred(), "abc", IntInput{Value: 3, Raw: "3", Present: true, Valid: true})
	de := util.ToDomainError(err)
	if de == nil || de.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
