package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"animal", "animal", 0},
		{"animal", "animals", 1},
		{"zone", "zones", 1},
		{"kitten", "sitting", 3},
		{"species", "specis", 1},
		{"Zone", "zone", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance is symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("zone", "zone"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("zone", "bone"), 1e-9)
}

func TestNormalizeIdent(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"maxCapacity":  "maxcapacity",
		"MaxCapacity":  "maxcapacity",
		"max_capacity": "maxcapacity",
		"#Zone":        "zone",
		"XMLParser":    "xmlparser",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}

func TestTokenizeIdent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"birth", "date"}, TokenizeIdent("birthDate"))
	assert.Equal(t, []string{"xml", "parser"}, TokenizeIdent("XMLParser"))
	assert.Equal(t, []string{"order", "id"}, TokenizeIdent("orderID"))
	assert.Equal(t, []string{"life", "stage"}, TokenizeIdent("life-stage"))
	assert.Equal(t, []string{"time", "time"}, TokenizeIdent("time.Time"))
	assert.Nil(t, TokenizeIdent(""))
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	known := []string{"Animal", "Zone", "Environment"}

	assert.Equal(t, []string{"Animal"}, Suggest("Animl", known, 3))
	assert.Equal(t, []string{"Zone"}, Suggest("zones", known, 3))
	assert.Empty(t, Suggest("Keeper", known, 3))
	assert.Empty(t, Suggest("Animal", nil, 3))
}

func TestRank(t *testing.T) {
	t.Parallel()

	ranked := Rank("zone", []string{"Bone", "Zone", "Cone"})

	assert.Equal(t, "Zone", ranked[0].Name)
	// Equal scores fall back to name order.
	assert.Equal(t, "Bone", ranked[1].Name)
	assert.Equal(t, "Cone", ranked[2].Name)

	assert.Len(t, ranked.Top(1), 1)
	assert.Len(t, ranked.Top(10), 3)
	assert.Len(t, ranked.AboveThreshold(0.9), 1)
}
