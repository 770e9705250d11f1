package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(ps []person) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_CaseInsensitiveAcrossFields(t *testing.T) {
	cfg := peopleConfig()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"first name lower", "ai", []int{1, 3}},
		{"first name upper", "AISHA", []int{1}},
		{"last name", "okel", []int{2}},
		{"phone", "0772", []int{1, 2}},
		{"numeric field", "2002", []int{3}},
		{"no match", "zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(people(), tt.query, cfg)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_BelowMinimumReturnsNothing(t *testing.T) {
	cfg := peopleConfig()

	assert.Nil(t, Filter(people(), "", cfg))
	assert.Nil(t, Filter(people(), "A", cfg))
	assert.NotEmpty(t, Filter(people(), "Ai", cfg))
}

func TestFilter_MinimumCountsRunes(t *testing.T) {
	cfg := peopleConfig()
	recs := []person{{ID: 9, FirstName: "Émile"}}

	assert.Nil(t, Filter(recs, "É", cfg))
	assert.Equal(t, []int{9}, ids(Filter(recs, "ém", cfg)))
}

func TestFilter_PreservesSourceOrder(t *testing.T) {
	cfg := peopleConfig()
	recs := []person{
		{ID: 5, FirstName: "Zed", LastName: "Mukasa"},
		{ID: 4, FirstName: "Mukasa", LastName: "Abe"},
		{ID: 6, FirstName: "Ann", LastName: "Mukasa"},
	}

	// An exact first-name match is not promoted ahead of earlier records.
	assert.Equal(t, []int{5, 4, 6}, ids(Filter(recs, "mukasa", cfg)))
}

func TestFilter_AbsentFieldsNeverMatch(t *testing.T) {
	cfg := peopleConfig()
	recs := []person{{ID: 7, FirstName: "Nil", Number: nil}}

	assert.Empty(t, Filter(recs, "<nil>", cfg))
	assert.Empty(t, Filter(recs, "nil>", cfg))
}

func TestFilter_ZeroMinimumMatchesEverythingOnEmptyQuery(t *testing.T) {
	cfg := peopleConfig()
	cfg.MinQueryLength = 0

	assert.Equal(t, []int{1, 2, 3}, ids(Filter(people(), "", cfg)))
}

func TestFilter_ResultIsSubsetAndIdempotent(t *testing.T) {
	cfg := peopleConfig()
	all := people()

	for _, q := range []string{"ai", "a", "07", "Okello", "xyz", "10"} {
		first := Filter(all, q, cfg)
		second := Filter(all, q, cfg)
		assert.Equal(t, first, second, "query %q", q)
		for _, p := range first {
			assert.Contains(t, all, p, "query %q", q)
			assert.True(t, matchesAny(p, strings.ToLower(q), cfg.Fields), "query %q", q)
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	cfg := peopleConfig()
	recs := people()
	before := ids(recs)

	_ = Filter(recs, "moses", cfg)

	assert.Equal(t, before, ids(recs))
}

type code string

func (c code) String() string { return "C-" + string(c) }

func TestStringify(t *testing.T) {
	var nilPtr *int
	n := 42

	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"typed nil pointer", nilPtr, "", false},
		{"nil slice", []string(nil), "", false},
		{"string", "abc", "abc", true},
		{"int", 17, "17", true},
		{"pointer", &n, "42", true},
		{"stringer", code("x"), "C-x", true},
		{"bool", true, "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Stringify(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryLen(t *testing.T) {
	assert.Equal(t, 0, QueryLen(""))
	assert.Equal(t, 3, QueryLen("abc"))
	assert.Equal(t, 2, QueryLen("éé"))
}

type item struct {
	Name string
	SKU  string
}

func TestFilter_NameAndSKUScenario(t *testing.T) {
	cfg := Config[item]{
		Fields: []Field[item]{
			StringField("name", func(i item) string { return i.Name }),
			StringField("sku", func(i item) string { return i.SKU }),
		},
		MinQueryLength: 2,
		Display:        StringField("name", func(i item) string { return i.Name }),
	}
	records := []item{{Name: "Aisha", SKU: "A1"}, {Name: "Moses", SKU: "A2"}}

	assert.Empty(t, Filter(records, "a", cfg))
	assert.Equal(t, []item{{Name: "Aisha", SKU: "A1"}}, Filter(records, "ai", cfg))
	assert.Equal(t, []item{{Name: "Moses", SKU: "A2"}}, Filter(records, "a2", cfg))
}
