// Copyright (c) 2026 Bnusa. All rights reserved.

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yad-anakin/bnusa/internal/platform/database/schema"
	"github.com/yad-anakin/bnusa/internal/platform/dberr"
	"github.com/yad-anakin/bnusa/pkg/uuid"
)

const resourceLike = "Like"

// likeRepository implements [Repository] using pgx.
type likeRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed like store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &likeRepository{pool: pool}
}

// Like relies on the unique (bookid, userid) constraint to absorb repeats.
func (repository *likeRepository) Like(context context.Context, bookID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.BookLike.Table,
		schema.BookLike.ID, schema.BookLike.BookID, schema.BookLike.UserID,
		schema.BookLike.BookID, schema.BookLike.UserID,
	)

	_, err := repository.pool.Exec(context, query, uuid.New(), bookID, userID)
	return dberr.Wrap(err, resourceLike, "like book")
}

func (repository *likeRepository) Unlike(context context.Context, bookID, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BookLike.Table, schema.BookLike.BookID, schema.BookLike.UserID)

	_, err := repository.pool.Exec(context, query, bookID, userID)
	return dberr.Wrap(err, resourceLike, "unlike book")
}

func (repository *likeRepository) Count(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.BookLike.Table, schema.BookLike.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceLike, "count likes")
	}
	return count, nil
}

func (repository *likeRepository) Has(context context.Context, bookID, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.BookLike.Table, schema.BookLike.BookID, schema.BookLike.UserID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceLike, "check like")
	}
	return exists, nil
}
