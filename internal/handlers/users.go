package handlers

import (
	"net/http"

	"bloglist"
	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// createUserRequest is the POST /api/users body.
type createUserRequest struct {
	Username string `json:"username" example:"mluukkai"`
	Name     string `json:"name" example:"Matti Luukkainen"`
	Password string `json:"password" example:"salainen"`
}

func toUserResponse(u models.User) bloglist.User {
	refs := make([]bloglist.BlogRef, 0, len(u.Blogs))
	for _, b := range u.Blogs {
		refs = append(refs, bloglist.BlogRef{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes})
	}
	return bloglist.User{ID: u.ID, Username: u.Username, Name: u.Name, Blogs: refs}
}

// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {object}  bloglist.User
// @Failure      400   {object}  bloglist.ErrorResponse
// @Router       /api/users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	u, err := h.services.CreateUser(c.Request.Context(), service.NewUser{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.log.Infow("user_create_failed", "username", req.Username, "err", err)
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   bloglist.User
// @Failure      500  {object}  bloglist.ErrorResponse
// @Router       /api/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]bloglist.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id (UUID)"
// @Success      200  {object}  bloglist.User
// @Failure      400  {object}  bloglist.ErrorResponse
// @Failure      404  {object}  bloglist.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	u, err := h.services.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
