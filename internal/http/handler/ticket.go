package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gatekeeper.app/api/internal/http/dto"
	"gatekeeper.app/api/internal/service"
)

type TicketHandler struct {
	tickets service.TicketService
}

func NewTicketHandler(tickets service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Submit accepts a spoof report and processes it end-to-end before
// responding. A failed analyzer call is not a request failure: the response
// still carries a ticket id, with status analyzer_error.
func (h *TicketHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: reporter (email), title and body are required"})
		return
	}

	ticket, err := h.tickets.Submit(ctx, service.SubmitTicketInput{
		Reporter:   req.Reporter,
		Title:      req.Title,
		Body:       req.Body,
		URLs:       req.URLs,
		RawHeaders: req.Headers,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to submit ticket", "error", err, "reporter", req.Reporter)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit ticket"})
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitTicketResponse{
		TicketID: ticket.ID,
		Status:   string(ticket.Status),
	})
}

type listTicketsResponse struct {
	Tickets []dto.TicketSummaryResponse `json:"tickets"`
}

// List returns all tickets newest first, abbreviated.
func (h *TicketHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	summaries, err := h.tickets.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}

	resp := listTicketsResponse{
		Tickets: make([]dto.TicketSummaryResponse, len(summaries)),
	}
	for i, s := range summaries {
		resp.Tickets[i] = dto.ToTicketSummaryResponse(s)
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns the full record including raw headers and the merged result.
func (h *TicketHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}

	ticket, err := h.tickets.Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found", "code": "not_found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get ticket", "error", err, "ticket_id", ticketID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ticket"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
