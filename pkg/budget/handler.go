package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id    int       `json:"id,omitempty"`
	Name  string    `json:"name"`
	Items []ItemDTO `json:"items,omitempty"`
}

type ItemDTO struct {
	Id            int        `json:"id,omitempty"`
	BudgetId      int        `json:"budgetId,omitempty"`
	CategoryId    int        `json:"categoryId"`
	Cadence       CadenceDTO `json:"cadence"`
	Amount        int64      `json:"amount"`
	TargetAmount  int64      `json:"targetAmount"`
	CadenceAmount int64      `json:"cadenceAmount"`
	PeriodStart   string     `json:"periodStart,omitempty"`
	PeriodEnd     string     `json:"periodEnd,omitempty"`
}

type CadenceDTO struct {
	Type       string `json:"type"`
	DayOfWeek  int    `json:"dayOfWeek,omitempty"`
	DayOfMonth int    `json:"dayOfMonth,omitempty"`
	Month      int    `json:"month,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetBudgets godoc
// @Summary List budgets with their items
// @Tags Budget
// @Produce json
// @Success 200 {array} BudgetDTO
// @Failure 403 {string} string "User not found"
// @Router /api/budget [get]
// @Security XUserId
func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing budgets")
	w.Header().Set("Content-Type", "application/json")
	budgets, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, budgetToDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateBudget godoc
// @Summary Create a new budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/budget [post]
// @Security XUserId
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), Budget{Name: dto.Name})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(budgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateItem godoc
// @Summary Add an item to a budget
// @Description The item's first period is computed from its cadence and the current time.
// @Tags Budget
// @Accept json
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Param item body ItemDTO true "Budget Item"
// @Success 201 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId}/item [post]
// @Security XUserId
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := strconv.Atoi(mux.Vars(r)["budgetId"])
	if err != nil {
		http.Error(w, "invalid budget id", http.StatusBadRequest)
		return
	}
	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item := dtoToItem(dto)
	item.BudgetId = budgetId

	created, err := h.service.CreateItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(itemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateItem godoc
// @Summary Update a budget item
// @Tags Budget
// @Accept json
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Param itemId path int true "Item ID"
// @Param item body ItemDTO true "Budget Item"
// @Success 200 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/budget/{budgetId}/item/{itemId} [put]
// @Security XUserId
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item := dtoToItem(dto)
	item.Id = itemId

	updated, err := h.service.UpdateItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := json.NewEncoder(w).Encode(itemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func budgetToDTO(b Budget) BudgetDTO {
	dto := BudgetDTO{Id: b.Id, Name: b.Name}
	for _, item := range b.Items {
		dto.Items = append(dto.Items, itemToDTO(item))
	}
	return dto
}

func itemToDTO(item BudgetItem) ItemDTO {
	return ItemDTO{
		Id:         item.Id,
		BudgetId:   item.BudgetId,
		CategoryId: item.CategoryId,
		Cadence: CadenceDTO{
			Type:       string(item.Cadence.Type),
			DayOfWeek:  int(item.Cadence.DayOfWeek),
			DayOfMonth: item.Cadence.DayOfMonth,
			Month:      int(item.Cadence.Month),
		},
		Amount:        item.Amount,
		TargetAmount:  item.TargetAmount,
		CadenceAmount: item.CadenceAmount,
		PeriodStart:   item.PeriodStart.Format(time.RFC3339),
		PeriodEnd:     item.PeriodEnd.Format(time.RFC3339),
	}
}

func dtoToItem(dto ItemDTO) BudgetItem {
	return BudgetItem{
		Id:         dto.Id,
		BudgetId:   dto.BudgetId,
		CategoryId: dto.CategoryId,
		Cadence: Cadence{
			Type:       CadenceType(dto.Cadence.Type),
			DayOfWeek:  time.Weekday(dto.Cadence.DayOfWeek),
			DayOfMonth: dto.Cadence.DayOfMonth,
			Month:      time.Month(dto.Cadence.Month),
		},
		Amount:        dto.Amount,
		TargetAmount:  dto.TargetAmount,
		CadenceAmount: dto.CadenceAmount,
	}
}
