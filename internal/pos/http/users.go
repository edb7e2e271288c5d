package http

import (
	"errors"
	"net/http"

	"github.com/shuttleworks/smashpos/internal/pos/domain"
	"github.com/shuttleworks/smashpos/internal/pos/service"
	"github.com/shuttleworks/smashpos/internal/pos/store"
	"github.com/shuttleworks/smashpos/pkg/httpx"
	"github.com/shuttleworks/smashpos/pkg/possdk"
	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// UsersHandler is the admin user management API. Every route is wrapped
// in the session and admin middlewares by the router.
type UsersHandler struct {
	Users *service.UserService
}

func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := domain.UserFilter{
		Search: r.URL.Query().Get("search"),
		Role:   domain.Role(r.URL.Query().Get("role")),
	}

	users, err := h.Users.List(ctx, filter)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, possdk.UsersResponse{Users: users})
}

func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req possdk.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeUserError(w, r, &service.ValidationError{Msg: "Invalid request body"})
		return
	}

	user, err := h.Users.Create(ctx, req)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, possdk.UserResponse{User: &user})
}

func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req possdk.UpdateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeUserError(w, r, &service.ValidationError{Msg: "Invalid request body"})
		return
	}

	user, err := h.Users.Update(ctx, req)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, possdk.UserResponse{User: &user})
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Users.Delete(ctx, r.URL.Query().Get("id")); err != nil {
		writeUserError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, possdk.MessageResponse{
		Success: true,
		Message: "User deleted",
	})
}

// writeUserError maps service and store errors onto API responses.
func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		apiErr := &possdk.APIError{StatusCode: http.StatusBadRequest, Message: vErr.Msg}
		apiErr.WriteError(w)
	case errors.Is(err, store.ErrAlreadyExists):
		apiErr := &possdk.APIError{StatusCode: http.StatusConflict, Message: "Email already in use"}
		apiErr.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		possdk.ErrUserNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("user management request failed", "err", err)
		possdk.ErrServerError.WriteError(w)
	}
}
