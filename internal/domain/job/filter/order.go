package filter

import (
	"cmp"
	"slices"

	"github.com/honeycarbs/talentry/internal/domain"
)

// Sort returns a stably sorted copy. Relevance keeps upstream order; missing
// timestamps and salaries count as zero.
func Sort(records []domain.JobRecord, order domain.SortOrder) []domain.JobRecord {
	out := make([]domain.JobRecord, len(records))
	copy(out, records)

	var compare func(a, b domain.JobRecord) int
	switch order {
	case domain.SortNewest:
		compare = func(a, b domain.JobRecord) int { return cmp.Compare(b.PostedAtOrZero(), a.PostedAtOrZero()) }
	case domain.SortOldest:
		compare = func(a, b domain.JobRecord) int { return cmp.Compare(a.PostedAtOrZero(), b.PostedAtOrZero()) }
	case domain.SortSalaryAsc:
		compare = func(a, b domain.JobRecord) int { return cmp.Compare(a.SalaryMinOrZero(), b.SalaryMinOrZero()) }
	case domain.SortSalaryDesc:
		compare = func(a, b domain.JobRecord) int { return cmp.Compare(b.SalaryMinOrZero(), a.SalaryMinOrZero()) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Paginate returns records[(page-1)*pageSize : start+pageCount*pageSize],
// clamped. Large inputs never overflow.
func Paginate(records []domain.JobRecord, page, pageSize, pageCount int) []domain.JobRecord {
	page = max(page, 1)
	pageSize = max(pageSize, 1)
	pageCount = max(pageCount, 1)

	n := len(records)
	if n == 0 || page-1 > n/pageSize {
		return []domain.JobRecord{}
	}
	start := (page - 1) * pageSize
	if start >= n {
		return []domain.JobRecord{}
	}

	remaining := n - start
	if pageSize >= remaining || pageCount > remaining/pageSize {
		return records[start:]
	}
	return records[start : start+pageCount*pageSize]
}
