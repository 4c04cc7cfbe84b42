package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Users is the account side of the API.
type Users interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next, confirm string) error
	DeleteUser(ctx context.Context, userID int64) error
}

// Lists is the membership and recommendation side of the API.
type Lists interface {
	Add(ctx context.Context, kind models.SetKind, userID, itemID int64) error
	Remove(ctx context.Context, kind models.SetKind, userID, itemID int64) error
	List(ctx context.Context, kind models.SetKind, userID int64) ([]int64, error)
	ListWithDetails(ctx context.Context, kind models.SetKind, userID int64) ([]json.RawMessage, error)
	Recommend(ctx context.Context, p models.PreferenceRequest) (models.Recommendation, error)
}

type Handler struct {
	users    Users
	lists    Lists
	validate *validator.Validate
	logger   logging.Logger
}

func NewHandler(users Users, lists Lists, l logging.Logger) *Handler {
	return &Handler{
		users:    users,
		lists:    lists,
		validate: newValidator(),
		logger:   l.With("module", "http"),
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "status", code, "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeError(w, code, msg)
}

// bind decodes and validates a JSON body, writing a 400 on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decode(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.bind(w, r, &req) {
		return
	}

	u, err := h.users.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.bind(w, r, &req) {
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	var req changePasswordRequest
	if !h.bind(w, r, &req) {
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), userID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// setRoutes mounts the four membership routes for one set.
func (h *Handler) setRoutes(kind models.SetKind) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", h.addItem(kind))
		r.Get("/", h.listItems(kind))
		r.Get("/details", h.listDetails(kind))
		r.Delete("/{dramaId}", h.removeItem(kind))
	}
}

// addItem takes the item id as a bare JSON number and answers with the
// updated set.
func (h *Handler) addItem(kind models.SetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathInt(w, r, "userId")
		if !ok {
			return
		}
		var itemID int64
		if err := decode(w, r, &itemID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := h.lists.Add(r.Context(), kind, userID, itemID); err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondList(w, r, kind, userID)
	}
}

func (h *Handler) removeItem(kind models.SetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathInt(w, r, "userId")
		if !ok {
			return
		}
		itemID, ok := pathInt(w, r, "dramaId")
		if !ok {
			return
		}

		if err := h.lists.Remove(r.Context(), kind, userID, itemID); err != nil {
			h.fail(w, r, err)
			return
		}
		h.respondList(w, r, kind, userID)
	}
}

func (h *Handler) listItems(kind models.SetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathInt(w, r, "userId")
		if !ok {
			return
		}
		h.respondList(w, r, kind, userID)
	}
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, kind models.SetKind, userID int64) {
	ids, err := h.lists.List(r.Context(), kind, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handler) listDetails(kind models.SetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathInt(w, r, "userId")
		if !ok {
			return
		}

		docs, err := h.lists.ListWithDetails(r.Context(), kind, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.PreferenceRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.lists.Recommend(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
