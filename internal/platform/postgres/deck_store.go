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

// DeckStore implements the store.DeckStore interface using a
// PostgreSQL database as the storage backend.
type DeckStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. If logger is nil, the default logger is used.
func NewDeckStore(pool *pgxpool.Pool, logger *slog.Logger) *DeckStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// CreateWithCards implements store.DeckStore.CreateWithCards.
// The deck row and all card rows are written in a single transaction;
// card inserts go through a pgx batch to keep the round trips down.
func (s *DeckStore) CreateWithCards(ctx context.Context, deck *domain.Deck, cards []*domain.Card) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO decks (id, title, total_cards, mastered_count, last_studied, status, progress, icon, color_class, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		deck.ID, deck.Title, deck.TotalCards, deck.MasteredCount, deck.LastStudied,
		deck.Status, deck.Progress, deck.Icon, deck.ColorClass, deck.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting deck: %w", err)
	}

	batch := &pgx.Batch{}
	for _, card := range cards {
		batch.Queue(`
			INSERT INTO cards (id, deck_id, question, answer, status, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			card.ID, card.DeckID, card.Question, card.Answer, card.Status, card.Position)
	}

	results := tx.SendBatch(ctx, batch)
	for range cards {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("inserting card: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing card batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "created deck with cards",
		"deck_id", deck.ID, "card_count", len(cards))
	return nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, total_cards, mastered_count, last_studied, status, progress, icon, color_class, created_at
		FROM decks WHERE id = $1`, id)

	deck, err := scanDeck(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, fmt.Errorf("querying deck: %w", err)
	}
	return deck, nil
}

// List implements store.DeckStore.List.
func (s *DeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, total_cards, mastered_count, last_studied, status, progress, icon, color_class, created_at
		FROM decks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying decks: %w", err)
	}
	defer rows.Close()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deck: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decks: %w", err)
	}

	return decks, nil
}

// Update implements store.DeckStore.Update.
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE decks
		SET mastered_count = $2, last_studied = $3, status = $4, progress = $5
		WHERE id = $1`,
		deck.ID, deck.MasteredCount, deck.LastStudied, deck.Status, deck.Progress,
	)
	if err != nil {
		return fmt.Errorf("updating deck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrDeckNotFound
	}

	return nil
}

// Delete implements store.DeckStore.Delete.
// Cards are removed by the ON DELETE CASCADE constraint on cards.deck_id.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting deck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrDeckNotFound
	}

	s.logger.DebugContext(ctx, "deleted deck", "deck_id", id)
	return nil
}

// scanDeck reads one deck row from a pgx row scanner.
func scanDeck(row pgx.Row) (*domain.Deck, error) {
	var deck domain.Deck
	err := row.Scan(
		&deck.ID, &deck.Title, &deck.TotalCards, &deck.MasteredCount, &deck.LastStudied,
		&deck.Status, &deck.Progress, &deck.Icon, &deck.ColorClass, &deck.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}
