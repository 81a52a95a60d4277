package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lippel/helpdesk-gateway/internal/domain"
	"github.com/lippel/helpdesk-gateway/pkg/util"
)

// ticketSelect joins the sector and status lookup tables for display names.
const ticketSelect = "*,setores(nome),status_chamado(nome)"

// ListTickets reads tickets newest-first under the caller's identity.
// Non-admin scopes add a sector equality filter on top of whatever
// row-level policy the store itself applies.
func (u AsUser) ListTickets(ctx context.Context, scope domain.Scope) ([]domain.Ticket, error) {
	query := url.Values{}
	query.Set("select", ticketSelect)
	query.Set("order", "created_at.desc")
	if !scope.All {
		query.Set("setor_id", fmt.Sprintf("eq.%d", scope.SetorID))
	}

	payload, err := u.c.do(ctx, http.MethodGet, u.c.restURL(u.c.cfg.TicketsTable, query.Encode()), u.userHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, util.NewUpstreamFailure("malformed store response", nil, err)
	}
	return tickets, nil
}

// InsertTicket creates a ticket row as the caller. The store's row-level
// policy decides whether the insert is allowed; rejection surfaces as a
// permission error, not as a gateway decision.
func (u AsUser) InsertTicket(ctx context.Context, ticket domain.Ticket) (*domain.Ticket, error) {
	body, err := json.Marshal(ticket)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	headers := u.userHeaders()
	headers.Set("Prefer", "return=representation")

	payload, err := u.c.do(ctx, http.MethodPost, u.c.restURL(u.c.cfg.TicketsTable, ""), headers, body)
	if err != nil {
		return nil, err
	}
	return decodeSingleTicket(payload)
}

// UpdateTicketStatus sets a ticket's status under the service-role tier.
// The admin check happens before this handle is ever reachable; the
// elevated credential exists so the mutation succeeds regardless of the
// store's row policy for regular users.
func (s Service) UpdateTicketStatus(ctx context.Context, id int64, statusID int) (*domain.Ticket, error) {
	body, err := json.Marshal(map[string]int{"status_id": statusID})
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	query := url.Values{}
	query.Set("id", fmt.Sprintf("eq.%d", id))
	query.Set("select", ticketSelect)

	headers := s.serviceHeaders()
	headers.Set("Prefer", "return=representation")

	payload, err := s.c.do(ctx, http.MethodPatch, s.c.restURL(s.c.cfg.TicketsTable, query.Encode()), headers, body)
	if err != nil {
		return nil, err
	}

	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, util.NewUpstreamFailure("malformed store response", nil, err)
	}
	if len(tickets) == 0 {
		// PATCH with an id filter that matches nothing returns an empty set.
		return nil, util.NewNotFound("chamado", map[string]any{"id": id})
	}
	return &tickets[0], nil
}

// ListTickets and InsertTicket at the client level bind the caller token
// per call; they satisfy the ticket service's store contract.
func (c *Client) ListTickets(ctx context.Context, token string, scope domain.Scope) ([]domain.Ticket, error) {
	return c.AsUser(token).ListTickets(ctx, scope)
}

// InsertTicket creates a ticket row under the caller's credential tier.
func (c *Client) InsertTicket(ctx context.Context, token string, ticket domain.Ticket) (*domain.Ticket, error) {
	return c.AsUser(token).InsertTicket(ctx, ticket)
}

func decodeSingleTicket(payload []byte) (*domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		// Some deployments answer with a bare object instead of an array.
		var one domain.Ticket
		if err2 := json.Unmarshal(payload, &one); err2 != nil {
			return nil, util.NewUpstreamFailure("malformed store response", nil, err)
		}
		return &one, nil
	}
	if len(tickets) == 0 {
		return nil, util.NewUpstreamFailure("store returned no representation", nil, nil)
	}
	return &tickets[0], nil
}
