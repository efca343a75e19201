package handlers

import (
	"net/http"

	"bloglist"

	"github.com/gin-gonic/gin"
)

// loginRequest carries credentials. Missing fields fail as bad credentials.
type loginRequest struct {
	Username string `json:"username" example:"mluukkai"`
	Password string `json:"password" example:"salainen"`
}

// @Summary      Log in
// @Description  Returns a bearer token for the Authorization header.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  bloglist.LoginResponse
// @Failure      400   {object}  bloglist.ErrorResponse
// @Failure      401   {object}  bloglist.ErrorResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bloglist.LoginResponse{Token: res.Token, Username: res.Username, Name: res.Name})
}
