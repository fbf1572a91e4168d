package handler_test

import (
	"context"

	"gatekeeper.app/api/internal/model"
	"gatekeeper.app/api/internal/service"
)

type mockTicketService struct {
	submitFn func(ctx context.Context, in service.SubmitTicketInput) (*model.Ticket, error)
	listFn   func(ctx context.Context) ([]model.TicketSummary, error)
	getFn    func(ctx context.Context, id int64) (*model.Ticket, error)

	submitCalls int
}

func (m *mockTicketService) Submit(ctx context.Context, in service.SubmitTicketInput) (*model.Ticket, error) {
	m.submitCalls++
	if m.submitFn != nil {
		return m.submitFn(ctx, in)
	}
	return &model.Ticket{}, nil
}

func (m *mockTicketService) List(ctx context.Context) ([]model.TicketSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.TicketSummary{}, nil
}

func (m *mockTicketService) Get(ctx context.Context, id int64) (*model.Ticket, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Ticket{ID: id}, nil
}
