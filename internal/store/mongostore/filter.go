package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

// jobFilter translates a predicate into a find filter. Field names are the
// bson names on models.Job.
func jobFilter(p query.Predicate) bson.M {
	f := bson.M{}
	if p.CategoryContains != "" {
		f["category"] = containsFold(p.CategoryContains)
	}
	if p.LocationContains != "" {
		f["location"] = containsFold(p.LocationContains)
	}
	if p.PostedOnOrAfter != "" {
		f["posted_date"] = bson.M{"$gte": p.PostedOnOrAfter}
	}
	if len(p.EmploymentTypes) > 0 {
		f["type"] = bson.M{"$in": p.EmploymentTypes}
	}
	if p.MinSalaryAtLeast != nil {
		f["minSalary"] = bson.M{"$gte": *p.MinSalaryAtLeast}
	}
	if p.MaxSalaryAtMost != nil {
		f["maxSalary"] = bson.M{"$lte": *p.MaxSalaryAtMost}
	}
	if p.CompanyEmail != "" {
		f["company_email"] = p.CompanyEmail
	}
	return f
}

func containsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// findOptions applies the ranking. Natural order is _id ascending, which for
// ObjectIDs is insertion order and keeps skip/limit pages stable.
func findOptions(r query.Ranking) *options.FindOptions {
	opts := options.Find()
	if r.Sort == query.SortViewCountDesc {
		opts.SetSort(bson.D{{Key: "viewCount", Value: -1}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if r.Window.Skip > 0 {
		opts.SetSkip(int64(r.Window.Skip))
	}
	if r.Window.Limit > 0 {
		opts.SetLimit(int64(r.Window.Limit))
	}
	return opts
}

func counterField(c store.Counter) string {
	if c == store.CounterViews {
		return "viewCount"
	}
	return "appliedCount"
}
