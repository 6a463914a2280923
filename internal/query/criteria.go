// Package query turns job search parameters into a store-agnostic predicate
// and a sort/window plan. Nothing in here touches a store.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FilterCriteria is the normalized form of a job search request. Pointer
// fields are nil when the parameter was absent or malformed.
type FilterCriteria struct {
	Category           string
	Location           string
	MinSalary          *int64
	MaxSalary          *int64
	EmploymentTypes    []string
	PostedWithinDays   *int
	PreferByPopularity bool
	Page               int
}

// ParseCriteria reads the /api/v1/jobs query string. Unknown keys are
// ignored, malformed numbers are treated as absent.
func ParseCriteria(params url.Values) FilterCriteria {
	c := FilterCriteria{
		Category:           strings.TrimSpace(params.Get("category")),
		Location:           strings.TrimSpace(params.Get("location")),
		MinSalary:          parseLowerBound(params.Get("minSalary")),
		MaxSalary:          parseUpperBound(params.Get("maxSalary")),
		EmploymentTypes:    SplitTypes(params.Get("type")),
		PreferByPopularity: params.Get("preference") == "true",
		Page:               ParsePage(params.Get("page")),
	}
	if days, ok := parseInt(params.Get("postedDate")); ok && days >= 0 {
		c.PostedWithinDays = &days
	}
	return c
}

// SplitTypes splits a comma separated list of employment types, dropping
// blanks.
func SplitTypes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParsePage returns a 1-based page number; anything unusable is page 1.
func ParsePage(raw string) int {
	page, ok := parseInt(raw)
	if !ok || page < 1 {
		return 1
	}
	return page
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// int64Limit is 2^63, the first float64 past math.MaxInt64.
const int64Limit = float64(1 << 63)

// Salaries are stored as integers, so a fractional lower bound rounds up and
// a fractional upper bound rounds down without changing which jobs match.
// Bounds past the int64 range saturate: one that excludes nothing is
// dropped, one that excludes everything is pinned to the extreme.
func parseLowerBound(raw string) *int64 {
	f, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	f = math.Ceil(f)
	switch {
	case f < -int64Limit:
		return nil
	case f >= int64Limit:
		v := int64(math.MaxInt64)
		return &v
	}
	v := int64(f)
	return &v
}

func parseUpperBound(raw string) *int64 {
	f, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	f = math.Floor(f)
	switch {
	case f >= int64Limit:
		return nil
	case f < -int64Limit:
		v := int64(math.MinInt64)
		return &v
	}
	v := int64(f)
	return &v
}
