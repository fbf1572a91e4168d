package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatekeeper.app/api/internal/model"
)

type ticketStore struct {
	pool *pgxpool.Pool
}

func newTicketStore(pool *pgxpool.Pool) TicketStore {
	return &ticketStore{pool: pool}
}

func (s *ticketStore) Create(ctx context.Context, ticket *model.Ticket) error {
	const q = `
		INSERT INTO tickets (id, reporter, title, body, urls, raw_headers, status, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
		RETURNING submitted_at`

	err := s.pool.QueryRow(ctx, q,
		ticket.ID,
		ticket.Reporter,
		ticket.Title,
		ticket.Body,
		joinURLs(ticket.URLs),
		ticket.RawHeaders,
		string(ticket.Status),
	).Scan(&ticket.SubmittedAt)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (s *ticketStore) Finalize(ctx context.Context, id int64, status model.TicketStatus, result *model.TicketResult) error {
	var blob []byte
	if result != nil {
		var err error
		blob, err = json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding ticket result: %w", err)
		}
	}

	const q = `UPDATE tickets SET status = $2, result = $3 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id, string(status), blob)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ticketStore) GetByID(ctx context.Context, id int64) (*model.Ticket, error) {
	const q = `
		SELECT id, submitted_at, reporter, title, body, urls, raw_headers, status, result
		FROM tickets WHERE id = $1`

	var (
		ticket model.Ticket
		urls   string
		status string
		blob   []byte
	)
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&ticket.ID,
		&ticket.SubmittedAt,
		&ticket.Reporter,
		&ticket.Title,
		&ticket.Body,
		&urls,
		&ticket.RawHeaders,
		&status,
		&blob,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ticket.URLs = splitURLs(urls)
	ticket.Status = model.TicketStatus(status)
	if blob != nil {
		var result model.TicketResult
		if err := json.Unmarshal(blob, &result); err != nil {
			return nil, fmt.Errorf("decoding ticket result: %w", err)
		}
		ticket.Result = &result
	}

	return &ticket, nil
}

func (s *ticketStore) List(ctx context.Context) ([]model.TicketSummary, error) {
	const q = `
		SELECT id, submitted_at, reporter, title, body, urls, status
		FROM tickets ORDER BY id DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []model.TicketSummary{}
	for rows.Next() {
		var (
			t      model.TicketSummary
			urls   string
			status string
		)
		if err := rows.Scan(&t.ID, &t.SubmittedAt, &t.Reporter, &t.Title, &t.Body, &urls, &status); err != nil {
			return nil, err
		}
		t.URLs = splitURLs(urls)
		t.Status = model.TicketStatus(status)
		summaries = append(summaries, t)
	}
	return summaries, rows.Err()
}

// urls are stored as a comma-delimited text column.
func joinURLs(urls []string) string {
	return strings.Join(urls, ",")
}

func splitURLs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
