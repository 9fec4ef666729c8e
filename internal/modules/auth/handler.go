package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matthews-wong/setaside-be/internal/api"
	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

// Handler exposes auth HTTP endpoints.
type Handler struct {
	service     Service
	userService user.Service
	mw          *authn.Middleware
}

func NewHandler(service Service, userService user.Service, mw *authn.Middleware) *Handler {
	return &Handler{service: service, userService: userService, mw: mw}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate)
			r.Get("/me", h.me)
		})
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	u, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, TokenResponse{Token: token, User: u})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	u, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, TokenResponse{Token: token, User: u})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	u, err := h.userService.GetUser(r.Context(), identity.ID)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, u)
}
