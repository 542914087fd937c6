package app

import (
	"github.com/centavo/centavo/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetBudgets).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget/{budgetId}/item", deps.BudgetHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/budget/{budgetId}/item/{itemId}", deps.BudgetHandler.UpdateItem).Methods("PUT")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetCategories).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.GetCategory).Methods("GET")

	// Transfers
	r.HandleFunc("/api/transfer", deps.TransferHandler.GetEntries).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/transfer", deps.TransferHandler.CreateTransfer).Methods("POST")
	r.HandleFunc("/api/transfer/run", deps.TransferHandler.Run).Methods("POST")

	// Rollover
	r.HandleFunc("/api/rollover/run", deps.RolloverHandler.Run).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/spending", deps.StatsHandler.GetStats).Queries("fromDate", "{fromDate}", "toDate", "{toDate}").Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
}
