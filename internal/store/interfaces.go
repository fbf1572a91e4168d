package store

import (
	"context"
	"errors"

	"gatekeeper.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// TicketStore defines the contract for ticket data access. Each record is
// written exactly twice: once at creation (queued) and once at finalization.
type TicketStore interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	Finalize(ctx context.Context, id int64, status model.TicketStatus, result *model.TicketResult) error
	GetByID(ctx context.Context, id int64) (*model.Ticket, error)
	List(ctx context.Context) ([]model.TicketSummary, error)
}
