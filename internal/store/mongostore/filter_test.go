package mongostore

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

func TestJobFilter(t *testing.T) {
	lo, hi := int64(30000), int64(90000)
	p := query.Predicate{
		CategoryContains: "c++",
		LocationContains: "Dhaka",
		PostedOnOrAfter:  "2026-10-03",
		EmploymentTypes:  []string{"remote", "contract"},
		MinSalaryAtLeast: &lo,
		MaxSalaryAtMost:  &hi,
	}
	want := bson.M{
		"category":    bson.M{"$regex": `c\+\+`, "$options": "i"},
		"location":    bson.M{"$regex": "Dhaka", "$options": "i"},
		"posted_date": bson.M{"$gte": "2026-10-03"},
		"type":        bson.M{"$in": []string{"remote", "contract"}},
		"minSalary":   bson.M{"$gte": int64(30000)},
		"maxSalary":   bson.M{"$lte": int64(90000)},
	}
	if got := jobFilter(p); !reflect.DeepEqual(got, want) {
		t.Errorf("jobFilter =\n%v\nwant\n%v", got, want)
	}
}

func TestJobFilter_Empty(t *testing.T) {
	if got := jobFilter(query.Predicate{}); len(got) != 0 {
		t.Errorf("empty predicate produced %v", got)
	}
}

func TestFindOptions(t *testing.T) {
	opts := findOptions(query.Ranking{Sort: query.SortViewCountDesc, Window: query.Window{Skip: 18, Limit: 9}})
	if opts.Skip == nil || *opts.Skip != 18 {
		t.Errorf("Skip = %v, want 18", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 9 {
		t.Errorf("Limit = %v, want 9", opts.Limit)
	}
	wantSort := bson.D{{Key: "viewCount", Value: -1}, {Key: "_id", Value: 1}}
	if !reflect.DeepEqual(opts.Sort, wantSort) {
		t.Errorf("Sort = %v, want %v", opts.Sort, wantSort)
	}

	natural := findOptions(query.Ranking{})
	if !reflect.DeepEqual(natural.Sort, bson.D{{Key: "_id", Value: 1}}) {
		t.Errorf("natural Sort = %v, want _id ascending", natural.Sort)
	}
	if natural.Skip != nil || natural.Limit != nil {
		t.Errorf("natural ranking must not set a window: %+v", natural)
	}
}

func TestCounterField(t *testing.T) {
	if counterField(store.CounterViews) != "viewCount" || counterField(store.CounterApplied) != "appliedCount" {
		t.Error("counter fields must match the job document field names")
	}
}
