package dataset

// Column names of the attendance export. They are a fixed external contract.
const (
	ColumnDate         = "Date"
	ColumnWeekday      = "Jour"
	ColumnMonth        = "Mois"
	ColumnNewEntries   = "Entrée"
	ColumnSubscription = "Passage"
	ColumnMeals        = "Plat"
	ColumnTotal        = "Total_jour"
)

// RequiredColumns lists every column the loader needs.
var RequiredColumns = []string{
	ColumnDate,
	ColumnWeekday,
	ColumnMonth,
	ColumnNewEntries,
	ColumnSubscription,
	ColumnMeals,
	ColumnTotal,
}

// DefaultDateLayouts are tried in order when parsing the Date column.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
}
