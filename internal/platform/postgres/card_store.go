package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recall-app/recall-api/internal/domain"
	"github.com/recall-app/recall-api/internal/store"
)

// CardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type CardStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCardStore creates a new PostgreSQL implementation of the
// CardStore interface. If logger is nil, the default logger is used.
func NewCardStore(pool *pgxpool.Pool, logger *slog.Logger) *CardStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

const cardColumns = "id, deck_id, question, answer, status, position"

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("querying card: %w", err)
	}
	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck.
func (s *CardStore) ListByDeck(ctx context.Context, deckID uuid.UUID, limit int) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY position`
	args := []any{deckID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// ListHard implements store.CardStore.ListHard.
func (s *CardStore) ListHard(ctx context.Context) ([]*domain.Card, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE status = ANY($1) ORDER BY deck_id, position`,
		[]string{string(domain.CardStatusHard), string(domain.CardStatusReview)})
	if err != nil {
		return nil, fmt.Errorf("querying hard cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// UpdateStatus implements store.CardStore.UpdateStatus.
func (s *CardStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CardStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cards SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating card status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// ResetStatuses implements store.CardStore.ResetStatuses.
func (s *CardStore) ResetStatuses(ctx context.Context, deckID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE cards SET status = $2 WHERE deck_id = $1`, deckID, domain.CardStatusNew)
	if err != nil {
		return fmt.Errorf("resetting card statuses: %w", err)
	}

	s.logger.DebugContext(ctx, "reset card statuses", "deck_id", deckID)
	return nil
}

// scanCard reads one card row from a pgx row scanner.
func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(&card.ID, &card.DeckID, &card.Question, &card.Answer, &card.Status, &card.Position)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// collectCards drains a result set into card entities.
func collectCards(rows pgx.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}
