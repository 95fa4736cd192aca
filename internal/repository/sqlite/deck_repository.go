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

var deckColumns = []string{"id", "user_id", "name", "description", "created_at", "updated_at"}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func scanDeck(row rowScanner) (*models.Deck, error) {
	var d models.Deck
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) ListByUser(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: user_id=%s", userID)

	query, args, err := sqlBuilder.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, *d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	query, args, err := sqlBuilder.Select("COUNT(*)").From("decks").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count decks: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *deckRepository) GetForUser(ctx context.Context, id int64, userID string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d, user_id=%s", id, userID)

	query, args, err := sqlBuilder.Select(deckColumns...).
		From("decks").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	d, err := scanDeck(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found for user: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return d, nil
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: user_id=%s, name=%s", d.UserID, d.Name)

	ts := now()
	query, args, err := sqlBuilder.Insert("decks").
		Columns("user_id", "name", "description", "created_at", "updated_at").
		Values(d.UserID, d.Name, d.Description, ts, ts).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return nil, err
	}
	log.Debug("deck inserted: id=%d", id)
	return r.GetForUser(ctx, id, d.UserID)
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d, user_id=%s", d.ID, d.UserID)

	query, args, err := sqlBuilder.Update("decks").
		Set("name", d.Name).
		Set("description", d.Description).
		Set("updated_at", now()).
		Where(squirrel.Eq{"id": d.ID, "user_id": d.UserID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		log.Debug("deck not found for update: id=%d", d.ID)
		return nil, nil
	}
	return r.GetForUser(ctx, d.ID, d.UserID)
}

func (r *deckRepository) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d, user_id=%s", id, userID)

	query, args, err := sqlBuilder.Delete("decks").Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	log.Debug("deck delete affected %d rows", n)
	return n > 0, nil
}
