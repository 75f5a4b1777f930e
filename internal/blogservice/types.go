package blogservice

import (
	"database/sql"
	"time"
)

type BlogService struct {
	m *BlogModel
}

type BlogModel struct {
	db *sql.DB
}

// Blog is the bare persisted row, used for a user's own blog listing.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `json:"-"`
}

// BlogDetail is the single-blog view: full content, counts and the viewer's
// like state.
type BlogDetail struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
	LikesCount     int       `json:"likes_count"`
	CommentsCount  int       `json:"comments_count"`
	Liked          bool      `json:"liked"`
}

// FeedEntry annotates a blog with its author and counts but carries no
// viewer-specific state.
type FeedEntry struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
	LikesCount     int       `json:"likes_count"`
	CommentsCount  int       `json:"comments_count"`
}

// SimpleFeedEntry additionally reports whether the current viewer has liked
// the blog.
type SimpleFeedEntry struct {
	FeedEntry
	Liked bool `json:"liked"`
}

// MinimalFeedEntry replaces the content with a short preview.
type MinimalFeedEntry struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Preview        string    `json:"preview"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
	LikesCount     int       `json:"likes_count"`
	CommentsCount  int       `json:"comments_count"`
}

type Comment struct {
	ID             int       `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
}
