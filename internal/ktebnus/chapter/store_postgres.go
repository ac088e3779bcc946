// Copyright (c) 2026 Bnusa. All rights reserved.

package chapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/database/schema"
	"github.com/yad-anakin/bnusa/internal/platform/dberr"
)

const (
	resourceChapter = "Chapter"

	// createAttempts bounds retries when two appends race for the same position.
	createAttempts = 3
)

// # PostgreSQL Repository

// chapterRepository implements [Repository] using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &chapterRepository{pool: pool}
}

var chapterColumns = strings.Join(schema.KtebnusChapter.Columns(), ", ")

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID,
		&chapter.BookID,
		&chapter.Title,
		&chapter.Content,
		&chapter.Order,
		&chapter.IsDraft,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

/*
Create appends a chapter.

The unique (bookid, chapterorder) constraint rejects the loser of two
concurrent appends; the insert is retried so it takes the next position.
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, COALESCE(MAX(%s), 0) + 1, $5::boolean
		FROM %s
		WHERE %s = $2::uuid
		RETURNING %s, %s, %s
	`,
		schema.KtebnusChapter.Table,
		schema.KtebnusChapter.ID, schema.KtebnusChapter.BookID, schema.KtebnusChapter.Title,
		schema.KtebnusChapter.Content, schema.KtebnusChapter.Order, schema.KtebnusChapter.IsDraft,
		schema.KtebnusChapter.Order,
		schema.KtebnusChapter.Table,
		schema.KtebnusChapter.BookID,
		schema.KtebnusChapter.Order, schema.KtebnusChapter.CreatedAt, schema.KtebnusChapter.UpdatedAt,
	)

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = repository.pool.QueryRow(context, query,
			chapter.ID, chapter.BookID, chapter.Title, chapter.Content, chapter.IsDraft,
		).Scan(&chapter.Order, &chapter.CreatedAt, &chapter.UpdatedAt)

		if !dberr.IsUniqueViolation(err) {
			break
		}
	}

	return dberr.Wrap(err, resourceChapter, "create chapter")
}

func (repository *chapterRepository) FindByID(context context.Context, bookID, chapterID string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		chapterColumns, schema.KtebnusChapter.Table, schema.KtebnusChapter.ID, schema.KtebnusChapter.BookID)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, chapterID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceChapter, "find chapter")
	}
	return chapter, nil
}

func (repository *chapterRepository) ListByBook(context context.Context, bookID string, publishedOnly bool, skip, limit int) ([]*Chapter, error) {
	var queryBuilder strings.Builder
	args := []any{bookID, skip}

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns, schema.KtebnusChapter.Table, schema.KtebnusChapter.BookID))

	if publishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND NOT %s", schema.KtebnusChapter.IsDraft))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC OFFSET $2", schema.KtebnusChapter.Order))

	if limit > 0 {
		queryBuilder.WriteString(" LIMIT $3")
		args = append(args, limit)
	}

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceChapter, "list chapters")
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceChapter, "scan chapter")
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceChapter, "iterate chapters")
	}

	return chapters, nil
}

func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4 AND %s = $5
		RETURNING %s
	`,
		schema.KtebnusChapter.Table,
		schema.KtebnusChapter.Title, schema.KtebnusChapter.Content, schema.KtebnusChapter.IsDraft, schema.KtebnusChapter.UpdatedAt,
		schema.KtebnusChapter.ID, schema.KtebnusChapter.BookID,
		schema.KtebnusChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.Title, chapter.Content, chapter.IsDraft, chapter.ID, chapter.BookID,
	).Scan(&chapter.UpdatedAt)

	return dberr.Wrap(err, resourceChapter, "update chapter")
}

func (repository *chapterRepository) Delete(context context.Context, bookID, chapterID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.KtebnusChapter.Table, schema.KtebnusChapter.ID, schema.KtebnusChapter.BookID)

	result, err := repository.pool.Exec(context, query, chapterID, bookID)
	if err != nil {
		return dberr.Wrap(err, resourceChapter, "delete chapter")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceChapter)
	}
	return nil
}
