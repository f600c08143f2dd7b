package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var table = Table{
	{Name: "work", Keywords: []string{"project", "meeting"}},
	{Name: "travel", Keywords: []string{"flight", "hotel"}},
}

func TestHitsCountsEachKeywordOnce(t *testing.T) {
	cat := table[0]

	assert.Equal(t, 2, cat.Hits("project meeting about the project"))
	assert.Equal(t, 1, cat.Hits("weekly meeting"))
	assert.Equal(t, 0, cat.Hits("nothing relevant"))
}

func TestMatches(t *testing.T) {
	cat := table[1]

	assert.True(t, cat.Matches("my flight is delayed"))
	assert.False(t, cat.Matches("my train is delayed"))
}

func TestFind(t *testing.T) {
	cat, ok := table.Find("travel")
	assert.True(t, ok)
	assert.Equal(t, "travel", cat.Name)

	_, ok = table.Find("missing")
	assert.False(t, ok)
}

func TestNamesPreservesOrder(t *testing.T) {
	assert.Equal(t, []string{"work", "travel"}, table.Names())
}
