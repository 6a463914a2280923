package query

import (
	"math"
	"slices"

	"github.com/justsurfingit/dream-finder/internal/models"
)

const (
	// DefaultPageSize is used for both the skip stride and the limit.
	DefaultPageSize = 9
	// RecentWindowDays bounds /api/v1/recent-jobs.
	RecentWindowDays = 14
	// MostViewedLimit bounds /api/v1/most-viewed15-jobs.
	MostViewedLimit = 15
)

type Sort int

const (
	// SortNatural leaves the store's insertion order alone.
	SortNatural Sort = iota
	SortViewCountDesc
)

// Window is a skip/limit slice. A zero Limit means unbounded.
type Window struct {
	Skip  int
	Limit int
}

// Bounds clamps the window to a result of length n.
func (w Window) Bounds(n int) (lo, hi int) {
	lo = min(max(w.Skip, 0), n)
	hi = n
	if w.Limit > 0 {
		hi = min(lo+w.Limit, n)
	}
	return lo, hi
}

type Ranking struct {
	Sort   Sort
	Window Window
}

// PageWindow returns the window for a 1-based page.
func PageWindow(page, pageSize int) Window {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	page = min(page, math.MaxInt/pageSize)
	return Window{Skip: (page - 1) * pageSize, Limit: pageSize}
}

func PlanRanking(c FilterCriteria, pageSize int) Ranking {
	r := Ranking{Window: PageWindow(c.Page, pageSize)}
	if c.PreferByPopularity {
		r.Sort = SortViewCountDesc
	}
	return r
}

// MostViewed is the fixed ranking behind the top-15 listing.
func MostViewed() Ranking {
	return Ranking{Sort: SortViewCountDesc, Window: Window{Limit: MostViewedLimit}}
}

// Apply sorts and windows jobs in memory. Ties keep their input order.
func Apply(jobs []models.Job, r Ranking) []models.Job {
	out := slices.Clone(jobs)
	if r.Sort == SortViewCountDesc {
		slices.SortStableFunc(out, func(a, b models.Job) int {
			switch {
			case a.ViewCount > b.ViewCount:
				return -1
			case a.ViewCount < b.ViewCount:
				return 1
			}
			return 0
		})
	}
	lo, hi := r.Window.Bounds(len(out))
	return out[lo:hi]
}
