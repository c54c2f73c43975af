package service

import (
	"context"
	"fmt"

	"github.com/inkpress/blog-backend/internal/server"
	"github.com/inkpress/blog-backend/internal/store"
	"github.com/rs/zerolog"
)

// Collection names for the two document sets this service manages.
// A blog detail is associated with its blog by convention only: callers
// pass a blog's id as the detail's id, nothing is enforced.
const (
	CollectionBlogs       = "blogs"
	CollectionBlogDetails = "blogDetails"
)

// BlogService exposes the blog and blog-detail operations over the
// record access layer. The two document sets are symmetric; only the
// collection name differs.
type BlogService struct {
	store  store.Store
	logger *zerolog.Logger
}

// NewBlogService constructs the blog service from the application container.
func NewBlogService(s *server.Server) *BlogService {
	return &BlogService{
		store:  s.Store,
		logger: s.Logger,
	}
}

// CreateBlog stores a new blog document with a creation timestamp.
func (s *BlogService) CreateBlog(ctx context.Context, fields store.Document) (store.Document, error) {
	return s.store.Create(ctx, CollectionBlogs, fields)
}

// ListBlogs returns all blogs ordered newest first.
func (s *BlogService) ListBlogs(ctx context.Context) ([]store.Document, error) {
	return s.store.ListAll(ctx, CollectionBlogs)
}

// UpdateBlog merges the supplied fields into the blog and stamps a
// fresh update timestamp.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, fields store.Document) (store.Document, error) {
	return s.store.Update(ctx, CollectionBlogs, id, fields)
}

// DeleteBlog removes the blog and returns a confirmation message.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) (string, error) {
	if err := s.store.Delete(ctx, CollectionBlogs, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("Blog with ID %s deleted successfully", id), nil
}

// CreateBlogDetail stores a new blog detail document with a creation timestamp.
func (s *BlogService) CreateBlogDetail(ctx context.Context, fields store.Document) (store.Document, error) {
	return s.store.Create(ctx, CollectionBlogDetails, fields)
}

// GetBlogDetail returns the detail document for the given id, or
// store.ErrNotFound when absent.
func (s *BlogService) GetBlogDetail(ctx context.Context, id string) (store.Document, error) {
	return s.store.GetByID(ctx, CollectionBlogDetails, id)
}

// UpdateBlogDetail merges the supplied fields into the detail document
// and stamps a fresh update timestamp.
func (s *BlogService) UpdateBlogDetail(ctx context.Context, id string, fields store.Document) (store.Document, error) {
	return s.store.Update(ctx, CollectionBlogDetails, id, fields)
}

// DeleteBlogDetail removes the detail document and returns a confirmation message.
func (s *BlogService) DeleteBlogDetail(ctx context.Context, id string) (string, error) {
	if err := s.store.Delete(ctx, CollectionBlogDetails, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("Blog detail with ID %s deleted successfully", id), nil
}
