package handler

import "time"

type ContextKey string

var (
	IdentityCtx ContextKey = "identity"
	MonthCtx    ContextKey = "month"
	DayCtx      ContextKey = "day"
)

// monthParam is the parsed {month} route segment.
type monthParam struct {
	ID    string
	Year  int
	Month time.Month
}
