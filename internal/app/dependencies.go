package app

import (
	"github.com/centavo/centavo/internal/config"
	"github.com/centavo/centavo/internal/scheduler"
	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/category"
	"github.com/centavo/centavo/pkg/rollover"
	"github.com/centavo/centavo/pkg/stats"
	"github.com/centavo/centavo/pkg/transaction"
	"github.com/centavo/centavo/pkg/transfer"
	"github.com/centavo/centavo/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repository
	CategoryService category.Service
	CategoryHandler *category.Handler

	BudgetRepo    budget.Repository
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	TransactionRepo transaction.Repository

	TransferRepo    transfer.Repository
	TransferService transfer.Service
	TransferHandler *transfer.Handler

	RolloverService rollover.Service
	RolloverHandler *rollover.Handler

	StatsService     stats.StatsService
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	Scheduler *scheduler.Scheduler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryRepo = category.NewRepository(db)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.BudgetRepo = budget.NewRepository(db)
	deps.BudgetService = budget.NewService(deps.BudgetRepo, deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.TransactionRepo = transaction.NewRepository(db)

	deps.TransferRepo = transfer.NewRepository(db)
	deps.TransferService = transfer.NewService(deps.TransferRepo, deps.Clock)
	deps.TransferHandler = transfer.NewHandler(deps.TransferService)

	deps.RolloverService = rollover.NewService(deps.BudgetRepo, deps.Clock)
	deps.RolloverHandler = rollover.NewHandler(deps.RolloverService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.TransactionRepo, deps.CategoryRepo)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	deps.Scheduler = scheduler.NewScheduler(deps.UserService, deps.RolloverService, deps.TransferService)

	return deps
}
