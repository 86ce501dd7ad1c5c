package note

import "fmt"

// SortOrder selects how a queried view is ordered.
type SortOrder string

const (
	SortDateDesc  SortOrder = "date-desc"
	SortDateAsc   SortOrder = "date-asc"
	SortAlphaAsc  SortOrder = "alpha-asc"
	SortAlphaDesc SortOrder = "alpha-desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(s); order {
	case SortDateDesc, SortDateAsc, SortAlphaAsc, SortAlphaDesc:
		return order, nil
	default:
		return "", fmt.Errorf("unknown sort order: %q", s)
	}
}
