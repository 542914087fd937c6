package stats

import (
	"time"

	"github.com/centavo/centavo/pkg/category"
)

type CategoryStats struct {
	Category category.Category
	// Spent and Income are in cents, always non-negative.
	Spent  int64
	Income int64
}

type SpendingSummary struct {
	StartDate     time.Time
	EndDate       time.Time
	Categories    []CategoryStats
	TotalSpent    int64
	TotalIncome   int64
	TransferCount int
}
