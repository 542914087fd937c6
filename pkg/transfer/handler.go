package transfer

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/centavo/centavo/pkg/budget"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Id         int    `json:"id"`
	Uid        string `json:"uid"`
	FromItemId int    `json:"fromItemId,omitempty"`
	ToItemId   int    `json:"toItemId"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
}

type TransferRequestDTO struct {
	FromItemId int   `json:"fromItemId,omitempty"`
	ToItemId   int   `json:"toItemId"`
	Amount     int64 `json:"amount"`
}

type RunResultDTO struct {
	Processed int `json:"processed"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Run godoc
// @Summary Run the automated transfer job now
// @Description Credits every current expense item with its cadence amount, capped at its target.
// @Tags Transfer
// @Produce json
// @Success 200 {object} RunResultDTO
// @Failure 403 {string} string "User not found"
// @Router /api/transfer/run [post]
// @Security XUserId
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	log.Debug("Running automated transfer job")
	w.Header().Set("Content-Type", "application/json")
	processed, err := h.service.ProcessTransfers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(RunResultDTO{Processed: processed}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateTransfer godoc
// @Summary Record a manual transfer between budget items
// @Tags Transfer
// @Accept json
// @Produce json
// @Param transfer body TransferRequestDTO true "Transfer"
// @Success 201 {object} EntryDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/transfer [post]
// @Security XUserId
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := h.service.Transfer(r.Context(), dto.FromItemId, dto.ToItemId, dto.Amount)
	if err != nil {
		if errors.Is(err, budget.ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetEntries godoc
// @Summary List transfer ledger entries for a period
// @Tags Transfer
// @Produce json
// @Param from query string true "Start date (RFC 3339)"
// @Param to query string true "End date (RFC 3339)"
// @Success 200 {array} EntryDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/transfer [get]
// @Security XUserId
func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}
	entries, err := h.service.GetEntries(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func entryToDTO(entry TransferLedgerEntry) EntryDTO {
	return EntryDTO{
		Id:         entry.Id,
		Uid:        entry.Uid,
		FromItemId: entry.FromItemId,
		ToItemId:   entry.ToItemId,
		Amount:     entry.Amount,
		Date:       entry.Date.Format(time.RFC3339),
	}
}
