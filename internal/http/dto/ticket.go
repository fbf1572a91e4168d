package dto

import (
	"time"

	"gatekeeper.app/api/internal/model"
)

type SubmitTicketRequest struct {
	Reporter string   `json:"reporter" binding:"required,email,max=255"`
	Title    string   `json:"title" binding:"required,max=500"`
	Body     string   `json:"body" binding:"required"`
	URLs     []string `json:"urls" binding:"omitempty,dive,max=2048"`
	// Headers may be empty: a report without usable header text still gets a
	// ticket (its verdict resolves to unknown).
	Headers string `json:"headers"`
}

type SubmitTicketResponse struct {
	TicketID int64  `json:"ticket_id,string"`
	Status   string `json:"status"`
}

type TicketSummaryResponse struct {
	ID          int64     `json:"id,string"`
	SubmittedAt time.Time `json:"submitted_at"`
	Reporter    string    `json:"reporter"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	URLs        []string  `json:"urls"`
	Status      string    `json:"status"`
}

func ToTicketSummaryResponse(t model.TicketSummary) TicketSummaryResponse {
	return TicketSummaryResponse{
		ID:          t.ID,
		SubmittedAt: t.SubmittedAt,
		Reporter:    t.Reporter,
		Title:       t.Title,
		Body:        t.Body,
		URLs:        t.URLs,
		Status:      string(t.Status),
	}
}

type TicketResponse struct {
	ID          int64               `json:"id,string"`
	SubmittedAt time.Time           `json:"submitted_at"`
	Reporter    string              `json:"reporter"`
	Title       string              `json:"title"`
	Body        string              `json:"body"`
	URLs        []string            `json:"urls"`
	Headers     string              `json:"headers"`
	Status      string              `json:"status"`
	Result      *model.TicketResult `json:"result"`
}

func ToTicketResponse(t *model.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:          t.ID,
		SubmittedAt: t.SubmittedAt,
		Reporter:    t.Reporter,
		Title:       t.Title,
		Body:        t.Body,
		URLs:        t.URLs,
		Headers:     t.RawHeaders,
		Status:      string(t.Status),
		Result:      t.Result,
	}
}
