package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Id   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetCategories godoc
// @Summary List all categories
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Failure 403 {string} string "User not found"
// @Router /api/category [get]
// @Security XUserId
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, categoryToDTO(c))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetCategory godoc
// @Summary Get a single category
// @Tags Category
// @Produce json
// @Param categoryId path int true "Category ID"
// @Success 200 {object} CategoryDTO
// @Failure 404 {string} string "Category Not Found"
// @Router /api/category/{categoryId} [get]
// @Security XUserId
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	categoryId, err := strconv.Atoi(mux.Vars(r)["categoryId"])
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}
	category, err := h.service.Get(r.Context(), categoryId)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(categoryToDTO(category)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateCategory godoc
// @Summary Create a new category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/category [post]
// @Security XUserId
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")
	w.Header().Set("Content-Type", "application/json")
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), Category{Name: dto.Name, Type: CategoryType(dto.Type)})
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(categoryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func categoryToDTO(c Category) CategoryDTO {
	return CategoryDTO{Id: c.Id, Name: c.Name, Type: string(c.Type)}
}
