package product

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/api"
	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

const maxImageSize = 5 << 20 // 5 MiB

// Handler exposes product HTTP endpoints. Reads are public, writes are
// staff-only.
type Handler struct {
	service   Service
	mw        *authn.Middleware
	uploadDir string
}

func NewHandler(service Service, mw *authn.Middleware, uploadDir string) *Handler {
	return &Handler{service: service, mw: mw, uploadDir: uploadDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/categories", h.categories)
		r.Get("/{id}", h.get)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate)
			r.Use(h.mw.RequireStaff())
			r.Post("/", h.create)
			r.Patch("/{id}", h.update)
			r.Delete("/{id}", h.delete)
			r.Post("/{id}/image", h.uploadImage)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r)
	f := ListFilter{
		Category:      r.URL.Query().Get("category"),
		Search:        r.URL.Query().Get("search"),
		AvailableOnly: r.URL.Query().Get("available") == "true",
		Limit:         page.Limit,
		Offset:        page.Offset(),
	}
	products, total, err := h.service.List(r.Context(), f)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, api.Paginated{Data: products, Meta: api.NewMeta(page, total)})
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, categories)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, _ := authn.FromContext(r.Context())
	var req CreateRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	p, err := h.service.Create(r.Context(), identity.ID, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	var req UpdateRequest
	if err := api.Decode(r, &req); err != nil {
		api.RespondError(w, err)
		return
	}
	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		api.RespondError(w, apperr.New(apperr.KindValidation, "multipart field 'image' is required"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		api.RespondError(w, apperr.New(apperr.KindValidation, "image must be png, jpg, or webp"))
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New(), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		api.RespondError(w, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		api.RespondError(w, err)
		return
	}

	p, err := h.service.SetImage(r.Context(), id, "/uploads/"+name)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, p)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.KindValidation, "invalid product id")
	}
	return id, nil
}
