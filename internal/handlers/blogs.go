package handlers

import (
	"net/http"

	"bloglist"
	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// createBlogRequest is the POST /api/blogs body.
type createBlogRequest struct {
	Title  string `json:"title" example:"React patterns"`
	Author string `json:"author" example:"Michael Chan"`
	URL    string `json:"url" example:"https://reactpatterns.com/"`
	Likes  *int   `json:"likes,omitempty" example:"7"`
}

// updateBlogRequest is the PUT /api/blogs/:id body. Absent keys are left unchanged.
type updateBlogRequest struct {
	Title  service.Optional[string] `json:"title" swaggertype:"string"`
	Author service.Optional[string] `json:"author" swaggertype:"string"`
	URL    service.Optional[string] `json:"url" swaggertype:"string"`
	Likes  service.Optional[int]    `json:"likes" swaggertype:"integer"`
}

func toBlogResponse(b models.Blog) bloglist.Blog {
	out := bloglist.Blog{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
	if b.Owner != nil {
		out.User = &bloglist.Owner{ID: b.Owner.ID, Username: b.Owner.Username, Name: b.Owner.Name}
	}
	return out
}

// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   bloglist.Blog
// @Failure      500  {object}  bloglist.ErrorResponse
// @Router       /api/blogs [get]
func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.services.ListBlogs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]bloglist.Blog, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Get blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog id (UUID)"
// @Success      200  {object}  bloglist.Blog
// @Failure      400  {object}  bloglist.ErrorResponse
// @Failure      404  {object}  bloglist.ErrorResponse
// @Router       /api/blogs/{id} [get]
func (h *Handler) getBlog(c *gin.Context) {
	b, err := h.services.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toBlogResponse(b))
}

// @Summary      Create blog
// @Description  Title and url are required; likes defaults to 0. The caller becomes the owner.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body      createBlogRequest  true  "Blog"
// @Success      201   {object}  bloglist.Blog
// @Failure      400   {object}  bloglist.ErrorResponse
// @Failure      401   {object}  bloglist.ErrorResponse
// @Router       /api/blogs [post]
// @Security     BearerAuth
func (h *Handler) createBlog(c *gin.Context) {
	var req createBlogRequest
	if !h.bindJSON(c, &req) {
		return
	}

	b, err := h.services.CreateBlog(c.Request.Context(), identity(c), service.NewBlog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toBlogResponse(b))
}

// @Summary      Update blog
// @Description  The owner may change any field. Others may only raise likes by exactly one.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Blog id (UUID)"
// @Param        body  body      updateBlogRequest  true  "Fields to change"
// @Success      200   {object}  bloglist.Blog
// @Failure      400   {object}  bloglist.ErrorResponse
// @Failure      401   {object}  bloglist.ErrorResponse
// @Failure      404   {object}  bloglist.ErrorResponse
// @Router       /api/blogs/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBlog(c *gin.Context) {
	var req updateBlogRequest
	if !h.bindJSON(c, &req) {
		return
	}

	b, err := h.services.UpdateBlog(c.Request.Context(), identity(c), c.Param("id"), service.BlogPatch{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toBlogResponse(b))
}

// @Summary      Delete blog
// @Tags         blogs
// @Param        id   path  string  true  "Blog id (UUID)"
// @Success      204
// @Failure      400  {object}  bloglist.ErrorResponse
// @Failure      401  {object}  bloglist.ErrorResponse
// @Failure      404  {object}  bloglist.ErrorResponse
// @Router       /api/blogs/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBlog(c *gin.Context) {
	if err := h.services.DeleteBlog(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
