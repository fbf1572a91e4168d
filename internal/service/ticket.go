package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gatekeeper.app/api/common/id"
	"gatekeeper.app/api/common/logger"
	"gatekeeper.app/api/internal/analyzer"
	"gatekeeper.app/api/internal/mailauth"
	"gatekeeper.app/api/internal/model"
	"gatekeeper.app/api/internal/store"
)

var ErrTicketNotFound = errors.New("ticket not found")

// SubmitTicketInput carries a validated report submission.
type SubmitTicketInput struct {
	Reporter   string
	Title      string
	Body       string
	URLs       []string
	RawHeaders string
}

type TicketService interface {
	Submit(ctx context.Context, in SubmitTicketInput) (*model.Ticket, error)
	List(ctx context.Context) ([]model.TicketSummary, error)
	Get(ctx context.Context, id int64) (*model.Ticket, error)
}

type ticketService struct {
	tickets  store.TicketStore
	analyzer analyzer.Client
}

func NewTicketService(tickets store.TicketStore, analyzerClient analyzer.Client) TicketService {
	return &ticketService{
		tickets:  tickets,
		analyzer: analyzerClient,
	}
}

// Submit drives a report through its whole lifecycle synchronously: persist
// as queued, call the analyzer once, compute the verdict from the headers,
// then finalize the same record. Exactly one outbound call and exactly two
// store writes happen per submission, on every path.
func (s *ticketService) Submit(ctx context.Context, in SubmitTicketInput) (*model.Ticket, error) {
	sc := logger.StartSpan(ctx, "ticket.submit")
	defer sc.End()
	ctx = sc.Context()

	ticket := &model.Ticket{
		ID:         id.New(),
		Reporter:   in.Reporter,
		Title:      in.Title,
		Body:       in.Body,
		URLs:       in.URLs,
		RawHeaders: in.RawHeaders,
		Status:     model.TicketStatusQueued,
	}

	// The queued insert must complete before the analyzer call; the terminal
	// write needs the assigned record.
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TicketID:  logger.Ptr(ticket.ID),
		Reporter:  logger.Ptr(ticket.Reporter),
		Component: "gatekeeper.service.ticket",
	})
	slog.InfoContext(ctx, "ticket queued")

	html, callErr := s.analyzer.Analyze(ctx, in.RawHeaders)

	// The verdict is computed from the same headers regardless of how the
	// analyzer call went.
	verdict := mailauth.Evaluate(in.RawHeaders)

	result := &model.TicketResult{Verdict: verdict}
	var status model.TicketStatus
	if callErr != nil {
		msg := callErr.Error()
		result.Error = &msg
		status = model.TicketStatusAnalyzerError
		sc.RecordError(callErr)
		slog.WarnContext(ctx, "analyzer call failed", "error", callErr)
	} else {
		result.HTML = &html
		status = model.TicketStatus(verdict.Overall)
	}

	if err := s.tickets.Finalize(ctx, ticket.ID, status, result); err != nil {
		return nil, fmt.Errorf("finalizing ticket: %w", err)
	}

	ticket.Status = status
	ticket.Result = result

	slog.InfoContext(ctx, "ticket finalized",
		"status", status,
		"overall", verdict.Overall,
	)

	return ticket, nil
}

func (s *ticketService) List(ctx context.Context) ([]model.TicketSummary, error) {
	summaries, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return summaries, nil
}

func (s *ticketService) Get(ctx context.Context, ticketID int64) (*model.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("getting ticket: %w", err)
	}
	return ticket, nil
}
