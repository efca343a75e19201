package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bloglist/internal/models"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, username, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT id, username, name, password_hash, created_at FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT id, username, name, password_hash, created_at FROM users WHERE username = ?`
	selectUsersSQL          = `SELECT id, username, name, password_hash, created_at FROM users ORDER BY rowid`

	selectUserBlogsSQL = `
		SELECT b.id, b.title, b.author, b.url, b.likes
		FROM user_blogs ub JOIN blogs b ON b.id = ub.blog_id
		WHERE ub.user_id = ?
		ORDER BY ub.position`
	selectAllUserBlogsSQL = `
		SELECT ub.user_id, b.id, b.title, b.author, b.url, b.likes
		FROM user_blogs ub JOIN blogs b ON b.id = ub.blog_id
		ORDER BY ub.user_id, ub.position`

	appendUserBlogSQL = `
		INSERT OR IGNORE INTO user_blogs (user_id, blog_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1 FROM user_blogs WHERE user_id = ?`
	removeUserBlogSQL = `DELETE FROM user_blogs WHERE user_id = ? AND blog_id = ?`
)

// Create inserts a new user. ID and CreatedAt are set when empty.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Blogs == nil {
		u.Blogs = []models.BlogRef{}
	}

	_, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Username, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByID fetches a user with its populated blog list. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", id, err)
	}
	if u == nil {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, selectUserBlogsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select blogs of user %q: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref models.BlogRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL, &ref.Likes); err != nil {
			return nil, fmt.Errorf("scan blog of user %q: %w", id, err)
		}
		u.Blogs = append(u.Blogs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByUsername fetches a user by username without its blog list.
// Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// List returns every user in creation order with populated blog lists.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		u.Blogs = []models.BlogRef{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs, err := r.db.QueryContext(ctx, selectAllUserBlogsSQL)
	if err != nil {
		return nil, fmt.Errorf("select user blogs: %w", err)
	}
	defer refs.Close()

	for refs.Next() {
		var (
			userID string
			ref    models.BlogRef
		)
		if err := refs.Scan(&userID, &ref.ID, &ref.Title, &ref.Author, &ref.URL, &ref.Likes); err != nil {
			return nil, fmt.Errorf("scan user blog: %w", err)
		}
		if i, ok := index[userID]; ok {
			users[i].Blogs = append(users[i].Blogs, ref)
		}
	}
	if err := refs.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// AppendBlog adds blogID to the end of the user's blog list.
func (r *UserRepository) AppendBlog(ctx context.Context, userID, blogID string) error {
	if _, err := r.db.ExecContext(ctx, appendUserBlogSQL, userID, blogID, userID); err != nil {
		return fmt.Errorf("append blog %q to user %q: %w", blogID, userID, err)
	}
	return nil
}

// RemoveBlog drops blogID from the user's blog list. Missing entries are not an error.
func (r *UserRepository) RemoveBlog(ctx context.Context, userID, blogID string) error {
	if _, err := r.db.ExecContext(ctx, removeUserBlogSQL, userID, blogID); err != nil {
		return fmt.Errorf("remove blog %q from user %q: %w", blogID, userID, err)
	}
	return nil
}

// scanUser reads a single user row. Returns (nil, nil) on sql.ErrNoRows.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.Blogs = []models.BlogRef{}
	return &u, nil
}

// isUniqueViolation matches the driver's extended result code, so a
// primary key clash is not reported as a taken username.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
