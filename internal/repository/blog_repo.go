package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloglist/internal/models"

	"github.com/google/uuid"
)

type BlogSQLite struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogSQLite {
	return &BlogSQLite{db: db}
}

var _ Blogs = (*BlogSQLite)(nil)

const (
	insertBlogSQL = `INSERT INTO blogs (id, title, author, url, likes, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectBlogsSQL = `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, u.id, u.username, u.name
		FROM blogs b LEFT JOIN users u ON u.id = b.user_id`
	selectBlogByIDSQL = selectBlogsSQL + ` WHERE b.id = ?`
	listBlogsSQL      = selectBlogsSQL + ` ORDER BY b.rowid`

	incrementLikesSQL = `UPDATE blogs SET likes = likes + 1 WHERE id = ? AND likes = ?`
	deleteBlogSQL     = `DELETE FROM blogs WHERE id = ?`
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBlog reads one joined blog row, populating Owner when the user exists.
func scanBlog(row rowScanner) (models.Blog, error) {
	var (
		b                    models.Blog
		ownerID, uname, name sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID, &b.CreatedAt, &ownerID, &uname, &name); err != nil {
		return models.Blog{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	if ownerID.Valid {
		b.Owner = &models.Owner{ID: ownerID.String, Username: uname.String, Name: name.String}
	}
	return b, nil
}

// Create inserts a blog. ID and CreatedAt are set when empty.
func (r *BlogSQLite) Create(ctx context.Context, b *models.Blog) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertBlogSQL, b.ID, b.Title, b.Author, b.URL, b.Likes, b.UserID, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert blog %q: %w", b.Title, err)
	}
	return nil
}

// Get fetches a blog by id with its owner. Returns (nil, nil) if not found.
func (r *BlogSQLite) Get(ctx context.Context, id string) (*models.Blog, error) {
	b, err := scanBlog(r.db.QueryRowContext(ctx, selectBlogByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select blog %q: %w", id, err)
	}
	return &b, nil
}

// List returns every blog in insertion order.
func (r *BlogSQLite) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, listBlogsSQL)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Blog, 0, 64)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildBlogUpdate writes only the columns set in c.
func buildBlogUpdate(id string, c models.BlogChanges) (string, []any) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if c.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *c.Title)
	}
	if c.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *c.Author)
	}
	if c.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *c.URL)
	}
	if c.Likes != nil {
		sets = append(sets, "likes = ?")
		args = append(args, *c.Likes)
	}
	return "UPDATE blogs SET " + strings.Join(sets, ", ") + " WHERE id = ?", append(args, id)
}

// Update writes the columns set in c. Reports false if no row matched.
func (r *BlogSQLite) Update(ctx context.Context, id string, c models.BlogChanges) (bool, error) {
	if c.Empty() {
		return false, fmt.Errorf("update blog %q: no columns to write", id)
	}
	query, args := buildBlogUpdate(id, c)
	return r.exec(ctx, "update blog", id, query, args...)
}

// IncrementLikes adds one like if the stored count still equals from.
// Reports false when the row is gone or was changed concurrently.
func (r *BlogSQLite) IncrementLikes(ctx context.Context, id string, from int) (bool, error) {
	return r.exec(ctx, "like blog", id, incrementLikesSQL, id, from)
}

// Delete removes a blog. Reports false if no row matched.
func (r *BlogSQLite) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, "delete blog", id, deleteBlogSQL, id)
}

// exec runs a single-row statement and reports whether it matched.
func (r *BlogSQLite) exec(ctx context.Context, op, id, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for blog %q: %w", id, err)
	}
	return n > 0, nil
}
