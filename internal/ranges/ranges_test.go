package ranges

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/timestable/internal/model"
)

var testBounds = model.Bounds{Min: 1, Max: 20}

func TestNewClampsInitialRanges(t *testing.T) {
	c := New(testBounds, model.Ranges{FirstMin: -5, FirstMax: 50, SecondMin: 9, SecondMax: 3})
	got := c.Snapshot()
	assert.Equal(t, model.Ranges{FirstMin: 1, FirstMax: 20, SecondMin: 9, SecondMax: 9}, got)
}

func TestSettersClamp(t *testing.T) {
	c := New(testBounds, model.Ranges{FirstMin: 2, FirstMax: 12, SecondMin: 2, SecondMax: 12})

	tests := []struct {
		name    string
		set     func(int) (int, bool)
		in      int
		want    int
		changed bool
	}{
		{"first min below bound", c.SetFirstMin, 0, 1, true},
		{"first min above max", c.SetFirstMin, 15, 12, true},
		{"first max below min", c.SetFirstMax, 3, 12, false},
		{"first max above bound", c.SetFirstMax, 99, 20, true},
		{"second min in range", c.SetSecondMin, 5, 5, true},
		{"second max below min", c.SetSecondMax, 1, 5, true},
		{"second max unchanged", c.SetSecondMax, 5, 5, false},
	}
	for _, tc := range tests {
		got, changed := tc.set(tc.in)
		assert.Equal(t, tc.want, got, tc.name)
		assert.Equal(t, tc.changed, changed, tc.name)
	}
	assert.Equal(t, model.Ranges{FirstMin: 12, FirstMax: 20, SecondMin: 5, SecondMax: 5}, c.Snapshot())
}

func TestRandomEditsKeepInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	c := New(testBounds, model.Ranges{FirstMin: 2, FirstMax: 12, SecondMin: 2, SecondMax: 12})
	setters := []func(int) (int, bool){c.SetFirstMin, c.SetFirstMax, c.SetSecondMin, c.SetSecondMax}

	for i := 0; i < 5000; i++ {
		setters[rnd.Intn(len(setters))](rnd.Intn(60) - 20)
		r := c.Snapshot()
		require.LessOrEqual(t, r.FirstMin, r.FirstMax, "edit %d: %+v", i, r)
		require.LessOrEqual(t, r.SecondMin, r.SecondMax, "edit %d: %+v", i, r)
		for _, v := range []int{r.FirstMin, r.FirstMax, r.SecondMin, r.SecondMax} {
			require.GreaterOrEqual(t, v, testBounds.Min, "edit %d: %+v", i, r)
			require.LessOrEqual(t, v, testBounds.Max, "edit %d: %+v", i, r)
		}
	}
}

func TestInvertedBoundsCollapse(t *testing.T) {
	c := New(model.Bounds{Min: 5, Max: 3}, model.Ranges{FirstMin: 1, FirstMax: 9, SecondMin: 1, SecondMax: 9})
	assert.Equal(t, model.Bounds{Min: 5, Max: 5}, c.Bounds())
	assert.True(t, c.Snapshot().Degenerate())
}
