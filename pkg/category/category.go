package category

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
)

// Category is static reference data: every transaction and budget item is
// assigned to exactly one category.
type Category struct {
	Id   int
	Name string
	Type CategoryType
}
