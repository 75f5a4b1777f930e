package blogservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mirrelia/quillpost/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title   string
	Content string
	UserID  int
}

// CreateBlog creates a new blog post and returns its id. Content may be
// empty; the title may not.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (int, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.insert(ctx, req.Title, req.Content, req.UserID)
}

// GetBlogByID returns a blog with its counts and the viewer's like state.
// Pass viewerID 0 for anonymous viewers.
func (s *BlogService) GetBlogByID(ctx context.Context, id, viewerID int) (*BlogDetail, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id, viewerID)
}

// DeleteBlog deletes a blog post. Only the user who created the blog post can
// delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, requesterID int) error {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, requesterID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteBlog(ctx, blogID, requesterID)
}

// GetBlogsByUserID returns all blog posts by a user, newest first.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserID(ctx, userID)
}

// GetFeed returns all blogs newest first with author and counts.
func (s *BlogService) GetFeed(ctx context.Context) ([]FeedEntry, error) {
	return s.m.getFeed(ctx)
}

// GetSimpleFeed is GetFeed plus the viewer's like state per blog.
func (s *BlogService) GetSimpleFeed(ctx context.Context, viewerID int) ([]SimpleFeedEntry, error) {
	return s.m.getSimpleFeed(ctx, viewerID)
}

// GetMinimalFeed returns the feed with content truncated to a preview and no
// viewer-specific state.
func (s *BlogService) GetMinimalFeed(ctx context.Context) ([]MinimalFeedEntry, error) {
	feed, err := s.m.getFeed(ctx)
	if err != nil {
		return nil, err
	}

	minimal := make([]MinimalFeedEntry, 0, len(feed))
	for _, e := range feed {
		minimal = append(minimal, MinimalFeedEntry{
			ID:             e.ID,
			Title:          e.Title,
			Preview:        preview(e.Content),
			CreatedAt:      e.CreatedAt,
			AuthorUsername: e.AuthorUsername,
			LikesCount:     e.LikesCount,
			CommentsCount:  e.CommentsCount,
		})
	}

	return minimal, nil
}

// ToggleLike flips the like of userID on blogID atomically and reports the
// new state together with the blog's total like count.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID int) (bool, int, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return false, 0, v.ValidationError()
	}

	return s.m.toggleLike(ctx, blogID, userID)
}

// AddComment persists a comment and returns it annotated with the author's
// username.
func (s *BlogService) AddComment(ctx context.Context, blogID, userID int, username, content string) (*Comment, error) {
	content = strings.TrimSpace(content)

	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	v.Check(content != "", "content", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment, err := s.m.insertComment(ctx, blogID, userID, content)
	if err != nil {
		return nil, err
	}

	comment.AuthorUsername = username
	return comment, nil
}

// GetComments returns all comments for the blog, oldest first.
func (s *BlogService) GetComments(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getComments(ctx, blogID)
}
