package service

import (
	"context"
	"testing"

	"github.com/inkpress/blog-backend/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlogService() *BlogService {
	nop := zerolog.Nop()
	return &BlogService{
		store:  store.NewMemoryStore(),
		logger: &nop,
	}
}

func TestBlogService_CollectionsAreSeparate(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	blog, err := svc.CreateBlog(ctx, store.Document{"title": "A"})
	require.NoError(t, err)

	detail, err := svc.CreateBlogDetail(ctx, store.Document{"body": "long form"})
	require.NoError(t, err)

	blogs, err := svc.ListBlogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, blog[store.FieldID], blogs[0][store.FieldID])

	// The detail never shows up in the blog listing.
	_, err = svc.GetBlogDetail(ctx, detail[store.FieldID].(string))
	require.NoError(t, err)
	_, err = svc.GetBlogDetail(ctx, blog[store.FieldID].(string))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBlogService_DeleteConfirmations(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	blog, err := svc.CreateBlog(ctx, store.Document{"title": "A"})
	require.NoError(t, err)
	blogID := blog[store.FieldID].(string)

	msg, err := svc.DeleteBlog(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, "Blog with ID "+blogID+" deleted successfully", msg)

	detail, err := svc.CreateBlogDetail(ctx, store.Document{"body": "x"})
	require.NoError(t, err)
	detailID := detail[store.FieldID].(string)

	msg, err = svc.DeleteBlogDetail(ctx, detailID)
	require.NoError(t, err)
	assert.Equal(t, "Blog detail with ID "+detailID+" deleted successfully", msg)
}
