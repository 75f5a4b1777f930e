package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNotOwner       = errors.New("not the owner")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

// unknownAuthor is reported when a blog's owning user row is missing.
const unknownAuthor = "Unknown"

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// foreignKeyError reports whether err is a Postgres foreign key constraint
// error on the named constraint.
func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, title, content string, userID int) (int, error) {
	query := `
		INSERT INTO blogs (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, content, userID).Scan(&id)
	if err != nil {
		switch {
		case foreignKeyError(err, "blogs_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

// getBlogByID returns the blog annotated with its author, counts and the
// viewer's like state. viewerID 0 means anonymous.
func (m *BlogModel) getBlogByID(ctx context.Context, id, viewerID int) (*BlogDetail, error) {
	query := `
		SELECT b.id, b.title, b.content, b.created_at, COALESCE(u.username, $3),
			(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id),
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id),
			EXISTS (SELECT 1 FROM likes l WHERE l.blog_id = b.id AND l.user_id = $2)
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	var blog BlogDetail
	err := m.db.QueryRowContext(ctx, query, id, viewerID, unknownAuthor).Scan(
		&blog.ID, &blog.Title, &blog.Content, &blog.CreatedAt, &blog.AuthorUsername,
		&blog.LikesCount, &blog.CommentsCount, &blog.Liked)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// deleteBlog removes the blog after checking ownership. Likes and comments go
// with it via the cascade on their foreign keys.
func (m *BlogModel) deleteBlog(ctx context.Context, blogID, requesterID int) error {
	var ownerID int
	err := m.db.QueryRowContext(ctx, "SELECT user_id FROM blogs WHERE id = $1", blogID).Scan(&ownerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	if ownerID != requesterID {
		return ErrNotOwner
	}

	res, err := m.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = $1", blogID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *BlogModel) getBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, title, content, created_at, user_id
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.CreatedAt, &blog.UserID)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getFeed(ctx context.Context) ([]FeedEntry, error) {
	query := `
		SELECT b.id, b.title, b.content, b.created_at, COALESCE(u.username, $1),
			(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id),
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id)
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, unknownAuthor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := []FeedEntry{}
	for rows.Next() {
		var e FeedEntry
		err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.AuthorUsername, &e.LikesCount, &e.CommentsCount)
		if err != nil {
			return nil, err
		}
		feed = append(feed, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}

func (m *BlogModel) getSimpleFeed(ctx context.Context, viewerID int) ([]SimpleFeedEntry, error) {
	query := `
		SELECT b.id, b.title, b.content, b.created_at, COALESCE(u.username, $2),
			(SELECT COUNT(*) FROM likes l WHERE l.blog_id = b.id),
			(SELECT COUNT(*) FROM comments c WHERE c.blog_id = b.id),
			EXISTS (SELECT 1 FROM likes l WHERE l.blog_id = b.id AND l.user_id = $1)
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := m.db.QueryContext(ctx, query, viewerID, unknownAuthor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := []SimpleFeedEntry{}
	for rows.Next() {
		var e SimpleFeedEntry
		err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.AuthorUsername, &e.LikesCount, &e.CommentsCount, &e.Liked)
		if err != nil {
			return nil, err
		}
		feed = append(feed, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}

// toggleLike flips the (blog, user) like inside one transaction. The unique
// constraint on likes makes the insert side race-free: two concurrent toggles
// cannot both insert.
func (m *BlogModel) toggleLike(ctx context.Context, blogID, userID int) (bool, int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)", blogID).Scan(&exists)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, ErrRecordNotFound
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE blog_id = $1 AND user_id = $2", blogID, userID)
	if err != nil {
		return false, 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	liked := false
	if deleted == 0 {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO likes (blog_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (blog_id, user_id) DO NOTHING`, blogID, userID)
		if err != nil {
			switch {
			case foreignKeyError(err, "likes_blog_id_fkey"):
				return false, 0, ErrRecordNotFound
			default:
				return false, 0, err
			}
		}
		liked = true
	}

	var count int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM likes WHERE blog_id = $1", blogID).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

// insertComment persists the comment and returns it without the author
// username; the caller already knows who is commenting.
func (m *BlogModel) insertComment(ctx context.Context, blogID, userID int, content string) (*Comment, error) {
	query := `
		INSERT INTO comments (content, blog_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	var c Comment
	c.Content = content

	err := m.db.QueryRowContext(ctx, query, content, blogID, userID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case foreignKeyError(err, "comments_blog_id_fkey"):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *BlogModel) getComments(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.content, c.created_at, COALESCE(u.username, $2)
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.blog_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := m.db.QueryContext(ctx, query, blogID, unknownAuthor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorUsername)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
