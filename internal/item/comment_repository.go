package item

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository defines methods for accessing item comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByItem(ctx context.Context, itemID string) ([]*Comment, error)
	ListByItems(ctx context.Context, itemIDs []string) ([]*Comment, error)
}

type pgxCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCommentRepository creates a CommentRepository backed by pgxpool.
func NewPgxCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgxCommentRepository{pool: pool}
}

func (r *pgxCommentRepository) Create(ctx context.Context, c *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.comments").
		Columns("text", "item_id", "author_id", "created_at").
		Values(c.Text, c.ItemID, c.AuthorID, c.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&c.ID)
}

func (r *pgxCommentRepository) ListByItem(ctx context.Context, itemID string) ([]*Comment, error) {
	return r.list(ctx, squirrel.Eq{"c.item_id": itemID})
}

func (r *pgxCommentRepository) ListByItems(ctx context.Context, itemIDs []string) ([]*Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, squirrel.Eq{"c.item_id": itemIDs})
}

func (r *pgxCommentRepository) list(ctx context.Context, pred squirrel.Sqlizer) ([]*Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created_at").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(pred).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, nil
}
