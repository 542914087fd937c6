package stats

import (
	"encoding/json"
	"net/http"
	"time"
)

type CategoryStatsDTO struct {
	CategoryId   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	CategoryType string `json:"categoryType"`
	Spent        int64  `json:"spent"`
	Income       int64  `json:"income"`
}

type SpendingSummaryDTO struct {
	StartDate     time.Time          `json:"startDate"`
	EndDate       time.Time          `json:"endDate"`
	Categories    []CategoryStatsDTO `json:"categories"`
	TotalSpent    int64              `json:"totalSpent"`
	TotalIncome   int64              `json:"totalIncome"`
	TransferCount int                `json:"transferCount"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

// GetStats godoc
// @Summary Get per-category spending and income for a period
// @Description Inter-account transfer legs are excluded from the totals. Set Accept: text/csv for a CSV rendering.
// @Tags Stats
// @Produce json
// @Param fromDate query string true "Start date (RFC 3339)"
// @Param toDate query string true "End date (RFC 3339)"
// @Success 200 {object} SpendingSummaryDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/stats/spending [get]
// @Security XUserId
func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	fromDateString := r.URL.Query().Get("fromDate")
	toDateString := r.URL.Query().Get("toDate")
	fromDate, err := time.Parse(time.RFC3339, fromDateString)
	if err != nil {
		http.Error(w, "fromDate must be in RFC3339 format", http.StatusBadRequest)
		return
	}
	toDate, err := time.Parse(time.RFC3339, toDateString)
	if err != nil {
		http.Error(w, "toDate must be in RFC3339 format", http.StatusBadRequest)
		return
	}
	stats, err := handler.statsService.GetStats(r.Context(), fromDate, toDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(stats SpendingSummary) SpendingSummaryDTO {
	categories := make([]CategoryStatsDTO, 0, len(stats.Categories))
	for _, categoryStats := range stats.Categories {
		categories = append(categories, CategoryStatsDTO{
			CategoryId:   categoryStats.Category.Id,
			CategoryName: categoryStats.Category.Name,
			CategoryType: string(categoryStats.Category.Type),
			Spent:        categoryStats.Spent,
			Income:       categoryStats.Income,
		})
	}
	return SpendingSummaryDTO{
		StartDate:     stats.StartDate,
		EndDate:       stats.EndDate,
		Categories:    categories,
		TotalSpent:    stats.TotalSpent,
		TotalIncome:   stats.TotalIncome,
		TransferCount: stats.TransferCount,
	}
}
