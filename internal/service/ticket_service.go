package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lippel/helpdesk-gateway/internal/authz"
	"github.com/lippel/helpdesk-gateway/internal/domain"
	"github.com/lippel/helpdesk-gateway/internal/events"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// TicketStore is the caller-bound slice of the ticket store. The token is
// forwarded verbatim so store row-level policy runs as the caller.
type TicketStore interface {
	ListTickets(ctx context.Context, token string, scope domain.Scope) ([]domain.Ticket, error)
	InsertTicket(ctx context.Context, token string, ticket domain.Ticket) (*domain.Ticket, error)
}

// TicketService validates submissions and coordinates the authorization
// policy with the store.
type TicketService struct {
	store           TicketStore
	policy          *authz.Policy
	dispatcher      events.Dispatcher
	validate        *validator.Validate
	defaultStatusID int
	logger          *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store           TicketStore
	Policy          *authz.Policy
	Dispatcher      events.Dispatcher
	DefaultStatusID int
	Logger          *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	defaultStatus := deps.DefaultStatusID
	if defaultStatus <= 0 {
		defaultStatus = 1
	}
	return &TicketService{
		store:           deps.Store,
		policy:          deps.Policy,
		dispatcher:      deps.Dispatcher,
		validate:        validator.New(),
		defaultStatusID: defaultStatus,
		logger:          deps.Logger,
	}
}

// IntInput is a loosely-typed integer field after wire decoding.
type IntInput struct {
	Value   int
	Raw     string
	Present bool
	Valid   bool
}

// CreateTicketInput describes a ticket submission before validation.
type CreateTicketInput struct {
	Nome          string
	Setor         string
	Problema      string
	Prioridade    string
	Interferencia string
	SetorID       IntInput
	StatusID      IntInput
}

// createRules drives the required-string checks via struct tags.
type createRules struct {
	Nome       string `validate:"required"`
	Setor      string `validate:"required"`
	Problema   string `validate:"required"`
	Prioridade string `validate:"required"`
}

// List returns tickets visible to the caller, newest-first. Scope comes
// from the authorization policy; the store call runs under the caller's
// own credential tier.
func (s *TicketService) List(ctx context.Context, cred authz.Credential) ([]domain.Ticket, error) {
	scope, _, err := s.policy.ResolveReadScope(ctx, cred)
	if err != nil {
		return nil, err
	}
	return s.store.ListTickets(ctx, cred.Token, scope)
}

// Create validates and normalizes a submission, then inserts it as the
// caller. Validation completes before any network call; no partial
// submission ever reaches the store.
func (s *TicketService) Create(ctx context.Context, cred authz.Credential, input CreateTicketInput) (*domain.Ticket, error) {
	ticket, err := s.normalizeCreate(input)
	if err != nil {
		return nil, err
	}

	created, err := s.store.InsertTicket(ctx, cred.Token, *ticket)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:        events.EventTicketCreated,
		TicketID:    created.ID,
		ActorUserID: cred.UserID,
		Payload: events.TicketCreatedPayload{
			SetorID:    created.SetorID,
			Prioridade: created.Prioridade,
		},
	})
	return created, nil
}

// UpdateStatus performs the two-phase privileged mutation: the policy
// confirms the caller is an administrator under the caller's own tier,
// then the returned service-tier handle executes the update.
func (s *TicketService) UpdateStatus(ctx context.Context, cred authz.Credential, rawID string, statusID IntInput) (*domain.Ticket, error) {
	if !statusID.Present || !statusID.Valid {
		return nil, util.NewInvalidInput("status_id obrigatório", map[string]any{
			"required": []string{"status_id"},
			"received": map[string]any{"status_id": statusID.Raw},
		})
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, util.NewNotFound("chamado", map[string]any{"id": rawID})
	}

	updater, err := s.policy.ElevateForStatusUpdate(ctx, cred)
	if err != nil {
		return nil, err
	}

	updated, err := updater.UpdateTicketStatus(ctx, id, statusID.Value)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:        events.EventTicketStatusChanged,
		TicketID:    updated.ID,
		ActorUserID: cred.UserID,
		Payload: events.TicketStatusChangedPayload{
			NewStatusID: updated.StatusID,
		},
	})
	return updated, nil
}

// normalizeCreate enforces the required-field set and coerces loose types.
// interferencia defaults to "nenhuma" and status_id to the configured
// initial status; both accept explicit values.
func (s *TicketService) normalizeCreate(input CreateTicketInput) (*domain.Ticket, error) {
	missing := []string{}
	if err := s.validate.Struct(createRules{
		Nome:       input.Nome,
		Setor:      input.Setor,
		Problema:   input.Problema,
		Prioridade: input.Prioridade,
	}); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				missing = append(missing, fieldName(fe.Field()))
			}
		} else {
			return nil, util.NewInternalError(err)
		}
	}

	invalid := []string{}
	if !input.SetorID.Present || input.SetorID.Raw == "" {
		missing = append(missing, "setor_id")
	} else if !input.SetorID.Valid {
		invalid = append(invalid, "setor_id")
	}
	if input.StatusID.Present && input.StatusID.Raw != "" && !input.StatusID.Valid {
		invalid = append(invalid, "status_id")
	}

	if len(missing) > 0 || len(invalid) > 0 {
		details := map[string]any{
			"required": missing,
			"received": receivedFields(input),
		}
		if len(invalid) > 0 {
			details["invalid"] = invalid
		}
		return nil, util.NewInvalidInput("campos obrigatórios não preenchidos", details)
	}

	interferencia := input.Interferencia
	if interferencia == "" {
		interferencia = domain.InterferenciaNone
	}
	statusID := s.defaultStatusID
	if input.StatusID.Valid {
		statusID = input.StatusID.Value
	}

	now := time.Now().UTC()
	return &domain.Ticket{
		Nome:          input.Nome,
		Setor:         input.Setor,
		SetorID:       input.SetorID.Value,
		Problema:      input.Problema,
		Prioridade:    input.Prioridade,
		Interferencia: interferencia,
		StatusID:      statusID,
		CreatedAt:     &now,
	}, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("event publish failed", zap.Error(err))
	}
}

// receivedFields echoes what the caller sent for diagnostics. The bearer
// credential is never part of the submission and never appears here.
func receivedFields(input CreateTicketInput) map[string]any {
	return map[string]any{
		"nome":       input.Nome,
		"setor":      input.Setor,
		"problema":   input.Problema,
		"prioridade": input.Prioridade,
		"setor_id":   input.SetorID.Raw,
	}
}

func fieldName(goField string) string {
	switch goField {
	case "Nome":
		return "nome"
	case "Setor":
		return "setor"
	case "Problema":
		return "problema"
	case "Prioridade":
		return "prioridade"
	}
	return goField
}
