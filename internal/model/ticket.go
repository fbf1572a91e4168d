package model

import (
	"time"

	"gatekeeper.app/api/internal/mailauth"
)

// TicketStatus is the lifecycle state of a submitted report. A ticket starts
// queued and transitions exactly once to one of the terminal values.
type TicketStatus string

const (
	TicketStatusQueued        TicketStatus = "queued"
	TicketStatusPass          TicketStatus = "pass"
	TicketStatusFail          TicketStatus = "fail"
	TicketStatusUnknown       TicketStatus = "unknown"
	TicketStatusAnalyzerError TicketStatus = "analyzer_error"
)

// IsTerminal reports whether the status is a final lifecycle value.
func (s TicketStatus) IsTerminal() bool {
	return s != TicketStatusQueued
}

// Ticket is a reported email under triage. Status and Result are owned by the
// orchestration run that created the record; nothing else mutates them.
type Ticket struct {
	ID          int64         `json:"id"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Reporter    string        `json:"reporter"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	URLs        []string      `json:"urls"`
	RawHeaders  string        `json:"raw_headers"`
	Status      TicketStatus  `json:"status"`
	Result      *TicketResult `json:"result,omitempty"`
}

// TicketSummary is the abbreviated listing shape: no raw headers, no result
// blob.
type TicketSummary struct {
	ID          int64        `json:"id"`
	SubmittedAt time.Time    `json:"submitted_at"`
	Reporter    string       `json:"reporter"`
	Title       string       `json:"title"`
	Body        string       `json:"body"`
	URLs        []string     `json:"urls"`
	Status      TicketStatus `json:"status"`
}

// TicketResult is the merged terminal result: the analyzer's HTML report or
// its failure description, plus the verdict computed from the headers. The
// verdict is attached even when the analyzer call failed, so consumers can
// tell "signals looked fine but the service was unreachable" from "signals
// failed".
type TicketResult struct {
	HTML    *string          `json:"html,omitempty"`
	Error   *string          `json:"error,omitempty"`
	Verdict mailauth.Verdict `json:"verdict"`
}
