package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/api"
	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service Service
	mw      *authn.Middleware
}

func NewHandler(service Service, mw *authn.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(h.mw.Authenticate)
		r.Get("/me", h.getMe)
		r.Patch("/me", h.updateMe)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.RequireRoles(authn.RoleAdmin))
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
		})
	})
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	u, err := h.service.GetUser(r.Context(), identity.ID)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, u)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	var req UpdateProfileRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	u, err := h.service.UpdateProfile(r.Context(), identity.ID, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, u)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r)
	f := ListFilter{
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	users, total, err := h.service.ListUsers(r.Context(), f)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, api.Paginated{Data: users, Meta: api.NewMeta(page, total)})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.RespondError(w, apperr.New(apperr.KindValidation, "invalid user id"))
		return
	}
	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.RespondError(w, apperr.New(apperr.KindValidation, "invalid user id"))
		return
	}
	var req AdminUpdateRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	u, err := h.service.AdminUpdateUser(r.Context(), id, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, u)
}
