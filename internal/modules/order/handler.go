package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/api"
	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

// Handler exposes order HTTP endpoints. Everything requires a bearer token;
// scoping and the pending-window rules live in the service.
type Handler struct {
	service Service
	mw      *authn.Middleware
}

func NewHandler(service Service, mw *authn.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(h.mw.Authenticate)
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.update)
		r.With(h.mw.RequireStaff()).Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.delete)

		r.Route("/{orderId}/items", func(r chi.Router) {
			r.Get("/", h.listItems)
			r.Post("/", h.addItem)
			r.Patch("/{itemId}", h.updateItem)
			r.Delete("/{itemId}", h.removeItem)
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	var req CreateRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	o, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	page := api.ParsePage(r)
	q := ListQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			api.RespondError(w, apperr.New(apperr.KindValidation, "invalid customer_id"))
			return
		}
		q.CustomerID = id
	}
	orders, total, err := h.service.List(r.Context(), identity, q)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, api.Paginated{Data: orders, Meta: api.NewMeta(page, total)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	o, err := h.service.Get(r.Context(), id, identity)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, o)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	var req UpdateRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	o, err := h.service.Update(r.Context(), id, identity, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	var req UpdateStatusRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, identity, req.Status)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, o)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id, identity); err != nil {
		api.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	orderID, err := pathID(r, "orderId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	items, err := h.service.ListItems(r.Context(), orderID, identity)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, items)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	orderID, err := pathID(r, "orderId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	var req ItemRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	it, err := h.service.AddItem(r.Context(), orderID, identity, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, it)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	orderID, err := pathID(r, "orderId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	var req UpdateItemRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	it, err := h.service.UpdateItem(r.Context(), orderID, itemID, identity, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, it)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	orderID, err := pathID(r, "orderId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		api.RespondError(w, err)
		return
	}
	if err := h.service.RemoveItem(r.Context(), orderID, itemID, identity); err != nil {
		api.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindValidation, "invalid %s", param)
	}
	return id, nil
}
