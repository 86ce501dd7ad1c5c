package note

import (
	"sort"
	"strings"

	"notekeeper/internal/domain/session"
)

// Query produces the derived view: notes matching searchText case-insensitively
// against title, body or any tag, ordered per order. It operates only on the
// in-memory list and never touches storage. The sort is stable, so the relative
// order of equal keys is deterministic for a fixed input.
func (s *Service) Query(sess *session.Session, searchText string, order SortOrder) ([]Note, error) {
	if !sess.Active() {
		return nil, ErrNoActiveSession
	}

	query := strings.ToLower(searchText)
	result := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if matches(n, query) {
			result = append(result, n)
		}
	}

	switch order {
	case SortDateDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt > result[j].UpdatedAt
		})
	case SortDateAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt < result[j].UpdatedAt
		})
	case SortAlphaAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return s.coll.CompareString(result[i].Title, result[j].Title) < 0
		})
	case SortAlphaDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return s.coll.CompareString(result[i].Title, result[j].Title) > 0
		})
	}

	return result, nil
}

func matches(n Note, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Body), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
