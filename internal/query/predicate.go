package query

import (
	"slices"
	"strings"
	"time"

	"github.com/justsurfingit/dream-finder/internal/models"
)

// DateLayout is the on-disk format of Job.PostedDate. Dates in this layout
// compare correctly as plain strings.
const DateLayout = time.DateOnly

// Predicate is a conjunction of job field tests. Zero-valued fields do not
// constrain the result.
type Predicate struct {
	CategoryContains string
	LocationContains string
	PostedOnOrAfter  string
	EmploymentTypes  []string
	MinSalaryAtLeast *int64
	MaxSalaryAtMost  *int64
	CompanyEmail     string
}

// BuildPredicate is a pure function of its arguments.
func BuildPredicate(c FilterCriteria, now time.Time) Predicate {
	p := Predicate{
		CategoryContains: c.Category,
		LocationContains: c.Location,
	}
	if c.PostedWithinDays != nil {
		p.PostedOnOrAfter = DaysAgo(now, *c.PostedWithinDays)
	}
	if len(c.EmploymentTypes) > 0 {
		p.EmploymentTypes = slices.Clone(c.EmploymentTypes)
	}
	if c.MinSalary != nil {
		v := *c.MinSalary
		p.MinSalaryAtLeast = &v
	}
	if c.MaxSalary != nil {
		v := *c.MaxSalary
		p.MaxSalaryAtMost = &v
	}
	return p
}

// DaysAgo returns the calendar date n days before now, in now's location.
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}

func (p Predicate) IsEmpty() bool {
	return p.CategoryContains == "" &&
		p.LocationContains == "" &&
		p.PostedOnOrAfter == "" &&
		len(p.EmploymentTypes) == 0 &&
		p.MinSalaryAtLeast == nil &&
		p.MaxSalaryAtMost == nil &&
		p.CompanyEmail == ""
}

// Matches evaluates the predicate against a single job. Stores that cannot
// push the predicate down use it directly.
func (p Predicate) Matches(j models.Job) bool {
	if p.CategoryContains != "" && !containsFold(j.Category, p.CategoryContains) {
		return false
	}
	if p.LocationContains != "" && !containsFold(j.Location, p.LocationContains) {
		return false
	}
	if p.PostedOnOrAfter != "" && j.PostedDate < p.PostedOnOrAfter {
		return false
	}
	if len(p.EmploymentTypes) > 0 && !slices.ContainsFunc(j.Types, func(t string) bool {
		return slices.Contains(p.EmploymentTypes, t)
	}) {
		return false
	}
	if p.MinSalaryAtLeast != nil && j.MinSalary < *p.MinSalaryAtLeast {
		return false
	}
	if p.MaxSalaryAtMost != nil && j.MaxSalary > *p.MaxSalaryAtMost {
		return false
	}
	if p.CompanyEmail != "" && j.CompanyEmail != p.CompanyEmail {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
