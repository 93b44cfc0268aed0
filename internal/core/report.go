package core

// CategoryAmount is a per-category total over some date range.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// MonthTotal is the total spent within one calendar month.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Total Money
}
