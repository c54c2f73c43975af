package handler

import (
	"net/http"

	"github.com/inkpress/blog-backend/internal/errs"
	"github.com/inkpress/blog-backend/internal/middleware"
	"github.com/inkpress/blog-backend/internal/server"
	"github.com/inkpress/blog-backend/internal/service"
	"github.com/inkpress/blog-backend/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BlogHandler serves the blog and blog-detail CRUD endpoints.
//
// Bodies are schemaless maps, so these endpoints bypass the typed
// Handle pipeline and bind directly; all store errors are returned to
// the global error handler for translation.
type BlogHandler struct {
	Handler
	blogService *service.BlogService
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(s *server.Server, blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		Handler:     NewHandler(s),
		blogService: blogService,
	}
}

// bindDocument decodes an arbitrary JSON body into a document.
// An empty body yields an empty document; any field set is accepted.
func bindDocument(c echo.Context) (store.Document, error) {
	var fields store.Document
	if err := c.Bind(&fields); err != nil {
		return nil, errs.NewBadRequestError("Invalid request body", false, nil, nil)
	}
	if fields == nil {
		fields = store.Document{}
	}
	return fields, nil
}

// CreateBlog stores a new blog from the request body and returns the
// stamped document including its store-assigned id.
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	fields, err := bindDocument(c)
	if err != nil {
		return err
	}

	doc, err := h.blogService.CreateBlog(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", docID(doc)).Msg("blog created")

	return c.JSON(http.StatusOK, doc)
}

// GetAllBlogs returns every blog, newest first.
func (h *BlogHandler) GetAllBlogs(c echo.Context) error {
	docs, err := h.blogService.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, docs)
}

// UpdateBlog merges the request body into the blog identified by the
// path parameter and returns the merged fields with the fresh update
// timestamp.
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	blogID := c.Param("blogId")

	fields, err := bindDocument(c)
	if err != nil {
		return err
	}

	doc, err := h.blogService.UpdateBlog(c.Request().Context(), blogID, fields)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", blogID).Msg("blog updated")

	return c.JSON(http.StatusOK, doc)
}

// DeleteBlog removes the blog and returns a text confirmation.
// Deleting an id that no longer exists is still a success.
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	blogID := c.Param("blogId")

	msg, err := h.blogService.DeleteBlog(c.Request().Context(), blogID)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", blogID).Msg("blog deleted")

	return c.String(http.StatusOK, msg)
}

// CreateBlogDetail stores a new blog detail from the request body.
func (h *BlogHandler) CreateBlogDetail(c echo.Context) error {
	fields, err := bindDocument(c)
	if err != nil {
		return err
	}

	doc, err := h.blogService.CreateBlogDetail(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", docID(doc)).Msg("blog detail created")

	return c.JSON(http.StatusOK, doc)
}

// GetBlogDetail returns the detail document for the path id. Absence
// is a plain-text 404, not a server error.
func (h *BlogHandler) GetBlogDetail(c echo.Context) error {
	blogID := c.Param("blogId")

	doc, err := h.blogService.GetBlogDetail(c.Request().Context(), blogID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.String(http.StatusNotFound, "No such document!")
		}
		return err
	}

	return c.JSON(http.StatusOK, doc)
}

// UpdateBlogDetail merges the request body into the detail document.
func (h *BlogHandler) UpdateBlogDetail(c echo.Context) error {
	blogID := c.Param("blogId")

	fields, err := bindDocument(c)
	if err != nil {
		return err
	}

	doc, err := h.blogService.UpdateBlogDetail(c.Request().Context(), blogID, fields)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", blogID).Msg("blog detail updated")

	return c.JSON(http.StatusOK, doc)
}

// DeleteBlogDetail removes the detail document and returns a text confirmation.
func (h *BlogHandler) DeleteBlogDetail(c echo.Context) error {
	blogID := c.Param("blogId")

	msg, err := h.blogService.DeleteBlogDetail(c.Request().Context(), blogID)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().Str("id", blogID).Msg("blog detail deleted")

	return c.String(http.StatusOK, msg)
}

func docID(doc store.Document) string {
	if id, ok := doc[store.FieldID].(string); ok {
		return id
	}
	return ""
}
