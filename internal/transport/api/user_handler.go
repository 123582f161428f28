package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService UserServicer
}

func NewUserHandler(userService UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// Index GET RouteGroup + UsersRoute. Все юзеры, новые первыми.
func (h *UserHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.userService.List(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = newUserResponse(u)
	}
	respondOK(c, http.StatusOK, "", response)
}

// Show GET RouteGroup + UserRoute.
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.Profile(ctx, id)
	if err != nil {
		abortWithServiceError(c, err, "User not found")
		return
	}
	respondOK(c, http.StatusOK, "", newUserResponse(*user))
}
