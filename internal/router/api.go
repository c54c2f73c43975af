package router

import (
	"github.com/inkpress/blog-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerBlogRoutes maps the public API surface under /api/blogs.
//
// Blog updates use PATCH while detail updates use PUT; both perform a
// partial merge, the split is kept for client compatibility.
func registerBlogRoutes(r *echo.Echo, h *handler.Handlers) {
	g := r.Group("/api/blogs")

	g.POST("/newslettersubscribe", h.Newsletter.Subscribe())

	// Blog routes
	g.POST("/createBlog", h.Blog.CreateBlog)
	g.GET("/getAllBlogs", h.Blog.GetAllBlogs)
	g.PATCH("/updateBlog/:blogId", h.Blog.UpdateBlog)
	g.DELETE("/deleteBlog/:blogId", h.Blog.DeleteBlog)

	// Blog detail routes
	g.POST("/createBlogDetail", h.Blog.CreateBlogDetail)
	g.GET("/getBlogDetail/:blogId", h.Blog.GetBlogDetail)
	g.PUT("/updateBlogDetail/:blogId", h.Blog.UpdateBlogDetail)
	g.DELETE("/deleteBlogDetail/:blogId", h.Blog.DeleteBlogDetail)
}
