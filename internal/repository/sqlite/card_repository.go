package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/repository"
)

var cardColumns = []string{"c.id", "c.deck_id", "c.front", "c.back", "c.created_at", "c.updated_at"}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row rowScanner) (*models.Card, error) {
	var c models.Card
	if err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ownedCard selects a card joined to its deck, restricted to decks of userID.
func ownedCard(id int64, userID string) squirrel.SelectBuilder {
	return sqlBuilder.Select(cardColumns...).
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Where(squirrel.Eq{"c.id": id, "d.user_id": userID})
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d", deckID)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards c").
		Where(squirrel.Eq{"c.deck_id": deckID}).
		OrderBy("c.updated_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, *c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) GetForOwner(ctx context.Context, id int64, userID string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d, user_id=%s", id, userID)

	query, args, err := ownedCard(id, userID).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found for owner: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return c, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	ts := now()
	query, args, err := sqlBuilder.Insert("cards").
		Columns("deck_id", "front", "back", "created_at", "updated_at").
		Values(c.DeckID, c.Front, c.Back, ts, ts).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return nil, err
	}
	log.Debug("card inserted: id=%d", id)

	c.ID = id
	c.CreatedAt = ts
	c.UpdatedAt = ts
	return &c, nil
}

func (r *cardRepository) UpdateForOwner(ctx context.Context, c models.Card, userID string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d, user_id=%s", c.ID, userID)

	var updated *models.Card
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := ownedCard(c.ID, userID).ToSql()
		if err != nil {
			return err
		}
		existing, err := scanCard(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for owner during update: id=%d", c.ID)
			return nil
		}
		if err != nil {
			return err
		}

		ts := now()
		query, args, err = sqlBuilder.Update("cards").
			Set("front", c.Front).
			Set("back", c.Back).
			Set("updated_at", ts).
			Where(squirrel.Eq{"id": existing.ID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		existing.Front = c.Front
		existing.Back = c.Back
		existing.UpdatedAt = ts
		updated = existing
		return nil
	})
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, err
	}
	return updated, nil
}

func (r *cardRepository) DeleteForOwner(ctx context.Context, id int64, userID string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d, user_id=%s", id, userID)

	query, args, err := sqlBuilder.Delete("cards").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("deck_id IN (SELECT id FROM decks WHERE user_id = ?)", userID)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	log.Debug("card delete affected %d rows", n)
	return n > 0, nil
}
