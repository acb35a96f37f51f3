package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"overcooked-storefront/menu-svc/internal/domain"
	"overcooked-storefront/menu-svc/internal/service"
	"overcooked-storefront/pkg/logx"

	"github.com/gorilla/mux"
)

const maxImageSize = 10 << 20

type Handler struct {
	Products service.ProductServiceInterface
}

func NewHandler(productSvc service.ProductServiceInterface) *Handler {
	return &Handler{Products: productSvc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/products", h.createProduct).Methods("POST")
	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.updateProduct).Methods("PUT")
	r.HandleFunc("/api/products/{id}", h.deleteProduct).Methods("DELETE")
	r.HandleFunc("/api/products/{id}/image", h.uploadProductImage).Methods("POST")

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Products.Create(r.Context(), &p); err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = mux.Vars(r)["id"]
	if err := h.Products.Update(r.Context(), &p); err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeProductError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	imageURL, err := h.Products.UploadImage(r.Context(), mux.Vars(r)["id"], header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
			return
		}
		writeProductError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": imageURL,
	})
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Products.Categories(r.Context())
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidProduct):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logx.Error().Err(err).Msg("product request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
