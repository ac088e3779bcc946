// Copyright (c) 2026 Bnusa. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yad-anakin/bnusa/internal/platform/database/schema"
	"github.com/yad-anakin/bnusa/internal/platform/dberr"
	"github.com/yad-anakin/bnusa/pkg/slice"
)

// # PostgreSQL Repository

// commentRepository implements [Repository] using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

var commentColumns = strings.Join(schema.BookComment.Columns(), ", ")

// replyColumns qualifies every column with the "c" alias used by reply queries.
var replyColumns = strings.Join(slice.Map(schema.BookComment.Columns(), func(column string) string {
	return "c." + column
}), ", ")

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	var comment Comment
	dest := []any{
		&comment.ID,
		&comment.BookID,
		&comment.UserID,
		&comment.UserName,
		&comment.UserEmail,
		&comment.UserAvatar,
		&comment.Content,
		&comment.ParentID,
		&comment.IsDeleted,
		&comment.DeletedAt,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.BookComment.Table,
		schema.BookComment.ID, schema.BookComment.BookID, schema.BookComment.UserID,
		schema.BookComment.UserName, schema.BookComment.UserEmail, schema.BookComment.UserAvatar,
		schema.BookComment.Content, schema.BookComment.ParentID,
		schema.BookComment.CreatedAt, schema.BookComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.BookID, comment.UserID,
		comment.UserName, comment.UserEmail, comment.UserAvatar,
		comment.Content, comment.ParentID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, resourceComment, "create comment")
}

func (repository *commentRepository) FindByID(context context.Context, commentID string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		commentColumns, schema.BookComment.Table, schema.BookComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment, "find comment")
	}
	return comment, nil
}

func (repository *commentRepository) ListTopLevel(context context.Context, bookID string, offset, limit int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC
		OFFSET $2 LIMIT $3
	`,
		commentColumns, schema.BookComment.Table,
		schema.BookComment.BookID, schema.BookComment.ParentID,
		schema.BookComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, bookID, offset, limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment, "list comments")
	}
	return collect(rows, false)
}

/*
ListReplies joins each reply to its parent to pick up the parent's author name.
*/
func (repository *commentRepository) ListReplies(context context.Context, parentID string, newestFirst bool, offset, limit int) ([]*Comment, int, error) {
	direction := "ASC"
	if newestFirst {
		direction = "DESC"
	}

	var queryBuilder strings.Builder
	args := []any{parentID, offset}

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COALESCE(p.%s, ''), COUNT(*) OVER() AS total_count
		FROM %s c
		LEFT JOIN %s p ON p.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s %s
		OFFSET $2`,
		replyColumns, schema.BookComment.UserName,
		schema.BookComment.Table,
		schema.BookComment.Table, schema.BookComment.ID, schema.BookComment.ParentID,
		schema.BookComment.ParentID,
		schema.BookComment.CreatedAt, direction,
	))

	if limit > 0 {
		queryBuilder.WriteString(" LIMIT $3")
		args = append(args, limit)
	}

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment, "list replies")
	}
	return collect(rows, true)
}

func (repository *commentRepository) ListChildIDs(context context.Context, parentIDs []string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		schema.BookComment.ID, schema.BookComment.Table, schema.BookComment.ParentID)

	rows, err := repository.pool.Query(context, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment, "list child comments")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment, "scan child comments")
	}
	return ids, nil
}

func (repository *commentRepository) DeleteByIDs(context context.Context, commentIDs []string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1::uuid[])`,
		schema.BookComment.Table, schema.BookComment.ID)

	result, err := repository.pool.Exec(context, query, commentIDs)
	if err != nil {
		return 0, dberr.Wrap(err, resourceComment, "delete comments")
	}
	return result.RowsAffected(), nil
}

// collect drains a windowed query whose last column is COUNT(*) OVER().
// withParentName expects the parent's author name just before the count.
func collect(rows pgx.Rows, withParentName bool) ([]*Comment, int, error) {
	defer rows.Close()

	comments := []*Comment{}
	var totalCount int
	for rows.Next() {
		var parentUserName string
		extra := []any{&totalCount}
		if withParentName {
			extra = []any{&parentUserName, &totalCount}
		}

		comment, err := scanComment(rows, extra...)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceComment, "scan comment")
		}
		comment.ParentUserName = parentUserName
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment, "iterate comments")
	}

	return comments, totalCount, nil
}
