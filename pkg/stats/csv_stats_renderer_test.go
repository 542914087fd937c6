package stats

import (
	"testing"
	"time"

	"github.com/centavo/centavo/pkg/category"
)

func TestCsvStatsRendererImpl_RenderStats(t1 *testing.T) {
	startDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		stats SpendingSummary
		want  string
	}{
		{
			name: "RenderStats with valid data",
			stats: SpendingSummary{
				StartDate: startDate,
				EndDate:   endDate,
				Categories: []CategoryStats{
					{
						Category: category.Category{Id: 1, Name: "Groceries", Type: category.TypeExpense},
						Spent:    12345,
					},
					{
						Category: category.Category{Id: 2, Name: "Salary", Type: category.TypeIncome},
						Income:   250000,
					},
				},
				TotalSpent:  12345,
				TotalIncome: 250000,
			},
			want: "Category,Spent,Income\n" +
				"Groceries,123.45,0.00\n" +
				"Salary,0.00,2500.00\n" +
				"Total,123.45,2500.00\n",
		},
		{
			name: "RenderStats with no categories",
			stats: SpendingSummary{
				StartDate: startDate,
				EndDate:   endDate,
			},
			want: "Category,Spent,Income\n" +
				"Total,0.00,0.00\n",
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := &CsvStatsRendererImpl{}
			if got, _ := t.RenderStats(tt.stats); got != tt.want {
				t1.Errorf("RenderStats() = %v, want %v", got, tt.want)
			}
		})
	}
}
