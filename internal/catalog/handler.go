// Package catalog serves the product catalog: listing, lookup, creation,
// updates and product pictures.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush/storefront/backend/internal/models"
	"github.com/ayush/storefront/backend/internal/respond"
	"github.com/ayush/storefront/backend/internal/store"
)

const (
	maxPictureSize = 10 << 20
	picturePrefix  = "/pictures/"
)

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error)
	SetProductPicture(ctx context.Context, id, picture string) (*models.Product, error)
}

// PictureStore defines the interface for picture file storage.
type PictureStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, string, int64, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds catalog HTTP handlers.
type Handler struct {
	products ProductStore
	pictures PictureStore
	log      *slog.Logger
}

func NewHandler(products ProductStore, pictures PictureStore, log *slog.Logger) *Handler {
	return &Handler{products: products, pictures: pictures, log: log}
}

// List returns every product.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.storeError(w, r, "list products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respond.JSON(w, http.StatusOK, products)
}

// Get returns a single product.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, r, "get product", err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Create adds a product with the default duration. Unlike Update, it
// requires picture and category.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	if req.Picture == "" || req.Category == "" {
		respond.Error(w, http.StatusBadRequest, "picture and category are required")
		return
	}

	_, err := h.products.CreateProduct(r.Context(), &models.Product{
		Name:     req.Name,
		Price:    req.Price,
		Duration: models.DefaultDuration,
		Picture:  req.Picture,
		Category: req.Category,
	})
	if err != nil {
		h.storeError(w, r, "create product", err)
		return
	}
	respond.Text(w, http.StatusOK, "Product Created!")
}

// Update replaces name, price, picture and category of a product and
// returns the stored result.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	p, err := h.products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), models.ProductUpdate{
		Name:     req.Name,
		Price:    req.Price,
		Picture:  req.Picture,
		Category: req.Category,
	})
	if err != nil {
		h.storeError(w, r, "update product", err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// UploadPicture stores a multipart "picture" file and points the product's
// picture at it. A picture previously uploaded here is removed.
func (h *Handler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get product", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPictureSize+(1<<20))
	file, header, err := r.FormFile("picture")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "picture exceeds 10 MiB")
			return
		}
		respond.Error(w, http.StatusBadRequest, "picture file is required")
		return
	}
	defer file.Close()

	if header.Size > maxPictureSize {
		respond.Error(w, http.StatusRequestEntityTooLarge, "picture exceeds 10 MiB")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(w, http.StatusBadRequest, "picture must be an image")
		return
	}

	key := fmt.Sprintf("products/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(header.Filename)))
	if err := h.pictures.Upload(r.Context(), key, file, header.Size, contentType); err != nil {
		h.log.ErrorContext(r.Context(), "upload picture", "product_id", id, "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to store picture")
		return
	}

	updated, err := h.products.SetProductPicture(r.Context(), id, picturePrefix+key)
	if err != nil {
		if rmErr := h.pictures.Remove(r.Context(), key); rmErr != nil {
			h.log.WarnContext(r.Context(), "remove orphaned picture", "key", key, "err", rmErr)
		}
		h.storeError(w, r, "set product picture", err)
		return
	}

	if old, ok := strings.CutPrefix(current.Picture, picturePrefix); ok && old != key {
		if err := h.pictures.Remove(r.Context(), old); err != nil {
			h.log.WarnContext(r.Context(), "remove replaced picture", "key", old, "err", err)
		}
	}
	respond.JSON(w, http.StatusOK, updated)
}

// Picture streams a stored product picture.
func (h *Handler) Picture(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		respond.Error(w, http.StatusNotFound, "picture not found")
		return
	}

	body, contentType, size, err := h.pictures.Open(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "picture not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "open picture", "key", key, "err", err)
		respond.Error(w, http.StatusInternalServerError, "download failed")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	io.Copy(w, body)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.ProductRequest, bool) {
	var req models.ProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Name == "" || req.Price <= 0 {
		respond.Error(w, http.StatusBadRequest, "name and a positive price are required")
		return req, false
	}
	return req, true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		respond.Error(w, http.StatusBadRequest, "invalid product id")
	case errors.Is(err, store.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "product not found")
	default:
		h.log.ErrorContext(r.Context(), op, "err", err)
		respond.Error(w, http.StatusInternalServerError, "database error")
	}
}
