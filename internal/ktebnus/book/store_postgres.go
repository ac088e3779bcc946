// Copyright (c) 2026 Bnusa. All rights reserved.

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yad-anakin/bnusa/internal/platform/apperr"
	"github.com/yad-anakin/bnusa/internal/platform/database/schema"
	"github.com/yad-anakin/bnusa/internal/platform/dberr"
	"github.com/yad-anakin/bnusa/internal/platform/postgres"
)

const resourceBook = "Book"

// likeEscaper escapes LIKE wildcards in user search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// # PostgreSQL Repository

// bookRepository implements [Repository] using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &bookRepository{pool: pool}
}

// bookColumns lists every column in [scanBook] order.
var bookColumns = strings.Join(schema.KtebnusBook.Columns(), ", ")

// scanBook hydrates a [Book] from a row selected with bookColumns.
// extra receives any trailing columns, such as a window count.
func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	var book Book
	dest := []any{
		&book.ID, &book.Slug, &book.UserID,
		&book.Author.Name, &book.Author.Username, &book.Author.Email, &book.Author.Avatar,
		&book.Title, &book.Description, &book.Genre, &book.Status, &book.CoverImage,
		&book.SpotifyLink, &book.YoutubeLinks, &book.ResourceLinks,
		&book.IsDraft, &book.IsPendingReview, &book.IsPublished, &book.Views,
		&book.CreatedAt, &book.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if book.YoutubeLinks == nil {
		book.YoutubeLinks = []string{}
	}
	if book.ResourceLinks == nil {
		book.ResourceLinks = []ResourceLink{}
	}
	return &book, nil
}

// encodeResourceLinks renders links as JSON for the jsonb column.
func encodeResourceLinks(links []ResourceLink) ([]byte, error) {
	if links == nil {
		links = []ResourceLink{}
	}
	return json.Marshal(links)
}

func youtubeParam(links []string) []string {
	if links == nil {
		return []string{}
	}
	return links
}

// # Writes

func (repository *bookRepository) Create(context context.Context, book *Book) error {
	resourceLinks, err := encodeResourceLinks(book.ResourceLinks)
	if err != nil {
		return apperr.Internal(fmt.Errorf("book: encode resource links: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			%s, %s, %s,
			%s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING %s, %s, %s
	`,
		schema.KtebnusBook.Table,
		schema.KtebnusBook.ID, schema.KtebnusBook.Slug, schema.KtebnusBook.UserID,
		schema.KtebnusBook.AuthorName, schema.KtebnusBook.AuthorUsername, schema.KtebnusBook.AuthorEmail, schema.KtebnusBook.AuthorAvatar,
		schema.KtebnusBook.Title, schema.KtebnusBook.Description, schema.KtebnusBook.Genre, schema.KtebnusBook.Status, schema.KtebnusBook.CoverImage,
		schema.KtebnusBook.SpotifyLink, schema.KtebnusBook.YoutubeLinks, schema.KtebnusBook.ResourceLinks,
		schema.KtebnusBook.IsDraft, schema.KtebnusBook.IsPendingReview, schema.KtebnusBook.IsPublished,
		schema.KtebnusBook.Views, schema.KtebnusBook.CreatedAt, schema.KtebnusBook.UpdatedAt,
	)

	err = repository.pool.QueryRow(context, query,
		book.ID, book.Slug, book.UserID,
		book.Author.Name, book.Author.Username, book.Author.Email, book.Author.Avatar,
		book.Title, book.Description, book.Genre, string(book.Status), book.CoverImage,
		book.SpotifyLink, youtubeParam(book.YoutubeLinks), resourceLinks,
		book.IsDraft, book.IsPendingReview, book.IsPublished,
	).Scan(&book.Views, &book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, resourceBook, "create book")
}

func (repository *bookRepository) Update(context context.Context, book *Book) error {
	resourceLinks, err := encodeResourceLinks(book.ResourceLinks)
	if err != nil {
		return apperr.Internal(fmt.Errorf("book: encode resource links: %w", err))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $9
		RETURNING %s
	`,
		schema.KtebnusBook.Table,
		schema.KtebnusBook.Title, schema.KtebnusBook.Description, schema.KtebnusBook.Genre, schema.KtebnusBook.Status, schema.KtebnusBook.CoverImage,
		schema.KtebnusBook.SpotifyLink, schema.KtebnusBook.YoutubeLinks, schema.KtebnusBook.ResourceLinks, schema.KtebnusBook.UpdatedAt,
		schema.KtebnusBook.ID,
		schema.KtebnusBook.UpdatedAt,
	)

	err = repository.pool.QueryRow(context, query,
		book.Title, book.Description, book.Genre, string(book.Status), book.CoverImage,
		book.SpotifyLink, youtubeParam(book.YoutubeLinks), resourceLinks,
		book.ID,
	).Scan(&book.UpdatedAt)

	return dberr.Wrap(err, resourceBook, "update book")
}

func (repository *bookRepository) MarkPendingReview(context context.Context, bookID string) (*Book, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = FALSE, %s = TRUE, %s = FALSE, %s = NOW()
		WHERE %s = $1 AND NOT %s AND NOT %s
		RETURNING %s
	`,
		schema.KtebnusBook.Table,
		schema.KtebnusBook.IsDraft, schema.KtebnusBook.IsPendingReview, schema.KtebnusBook.IsPublished, schema.KtebnusBook.UpdatedAt,
		schema.KtebnusBook.ID, schema.KtebnusBook.IsPublished, schema.KtebnusBook.IsPendingReview,
		bookColumns,
	)

	book, err := scanBook(repository.pool.QueryRow(context, query, bookID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Conflict("Book is already published or pending review")
	}
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "mark book pending review")
	}
	return book, nil
}

func (repository *bookRepository) Delete(context context.Context, bookID string) error {
	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		chaptersQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.KtebnusChapter.Table, schema.KtebnusChapter.BookID)
		if _, err := tx.Exec(context, chaptersQuery, bookID); err != nil {
			return dberr.Wrap(err, resourceBook, "delete book chapters")
		}

		bookQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.KtebnusBook.Table, schema.KtebnusBook.ID)
		result, err := tx.Exec(context, bookQuery, bookID)
		if err != nil {
			return dberr.Wrap(err, resourceBook, "delete book")
		}
		if result.RowsAffected() == 0 {
			return apperr.NotFound(resourceBook)
		}
		return nil
	})
}

// # Reads

func (repository *bookRepository) FindByOwner(context context.Context, slug, userID string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		bookColumns, schema.KtebnusBook.Table, schema.KtebnusBook.Slug, schema.KtebnusBook.UserID)

	book, err := scanBook(repository.pool.QueryRow(context, query, slug, userID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "find book by owner")
	}
	return book, nil
}

func (repository *bookRepository) FindBySlug(context context.Context, slug string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.KtebnusBook.Table, schema.KtebnusBook.Slug)

	book, err := scanBook(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "find book by slug")
	}
	return book, nil
}

func (repository *bookRepository) FindPublished(context context.Context, slug string, incrementViews bool) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		bookColumns, schema.KtebnusBook.Table, schema.KtebnusBook.Slug, schema.KtebnusBook.IsPublished)

	// Read-and-increment is one statement, so concurrent readers never lose a view.
	if incrementViews {
		query = fmt.Sprintf(`
			UPDATE %s SET %s = %s + 1
			WHERE %s = $1 AND %s
			RETURNING %s
		`,
			schema.KtebnusBook.Table, schema.KtebnusBook.Views, schema.KtebnusBook.Views,
			schema.KtebnusBook.Slug, schema.KtebnusBook.IsPublished,
			bookColumns,
		)
	}

	book, err := scanBook(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "find published book")
	}
	return book, nil
}

func (repository *bookRepository) ListByOwner(context context.Context, userID string, filter OwnerFilter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s = $1`,
		bookColumns, schema.KtebnusBook.Table, schema.KtebnusBook.UserID))

	if filter.DraftsOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s", schema.KtebnusBook.IsDraft))
	}
	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s", schema.KtebnusBook.IsPublished))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $2 OFFSET $3", schema.KtebnusBook.CreatedAt))

	return repository.list(context, queryBuilder.String(), userID, limit, offset)
}

func (repository *bookRepository) ListPublished(context context.Context, filter PublicFilter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		bookColumns, schema.KtebnusBook.Table, schema.KtebnusBook.IsPublished))

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.KtebnusBook.Title, argID,
			schema.KtebnusBook.Description, argID,
			schema.KtebnusBook.AuthorName, argID,
		))
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		argID++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND LOWER(%s) = LOWER($%d)", schema.KtebnusBook.Genre, argID))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Year > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND EXTRACT(YEAR FROM %s) = $%d", schema.KtebnusBook.CreatedAt, argID))
		args = append(args, filter.Year)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.KtebnusBook.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	return repository.list(context, queryBuilder.String(), args...)
}

// list runs a windowed query whose last column is COUNT(*) OVER().
func (repository *bookRepository) list(context context.Context, query string, args ...any) ([]*Book, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceBook, "list books")
	}
	defer rows.Close()

	books := []*Book{}
	var totalCount int
	for rows.Next() {
		book, err := scanBook(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceBook, "scan book")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceBook, "iterate books")
	}

	return books, totalCount, nil
}

// # Chapter Outline

func (repository *bookRepository) CountChapters(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.KtebnusChapter.Table, schema.KtebnusChapter.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceBook, "count chapters")
	}
	return count, nil
}

func (repository *bookRepository) ListChapterOutline(context context.Context, bookID string) ([]ChapterSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.KtebnusChapter.ID, schema.KtebnusChapter.Title, schema.KtebnusChapter.Order,
		schema.KtebnusChapter.IsDraft, schema.KtebnusChapter.CreatedAt, schema.KtebnusChapter.UpdatedAt,
		schema.KtebnusChapter.Table,
		schema.KtebnusChapter.BookID,
		schema.KtebnusChapter.Order,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "list chapter outline")
	}
	defer rows.Close()

	chapters := []ChapterSummary{}
	for rows.Next() {
		var chapter ChapterSummary
		if err := rows.Scan(&chapter.ID, &chapter.Title, &chapter.Order, &chapter.IsDraft, &chapter.CreatedAt, &chapter.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceBook, "scan chapter outline")
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceBook, "iterate chapter outline")
	}

	return chapters, nil
}
