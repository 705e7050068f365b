package generator

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/internal/catalog"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed+1), catalog.Airlines())
}

func TestGenerate_CountAndArrival(t *testing.T) {
	g := newSeeded(42)
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, n := range []int{1, 10, 37} {
		offers := g.Generate("DEL", "BOM", date, n)
		require.Len(t, offers, n)
		for _, o := range offers {
			assert.Equal(t, o.DepartureTime.Add(o.Duration()), o.ArrivalTime, "offer %s", o.ID)
		}
	}
}

func TestGenerate_DefaultCount(t *testing.T) {
	offers := newSeeded(1).Generate("DEL", "BOM", time.Now(), 0)
	assert.Len(t, offers, DefaultCount)
}

func TestGenerate_Ranges(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	offers := newSeeded(7).Generate("BLR", "GOI", date, 500)

	airlineIDs := map[string]bool{}
	for _, a := range catalog.Airlines() {
		airlineIDs[a.ID] = true
	}

	stops := 0
	for _, o := range offers {
		assert.Equal(t, "BLR", o.From)
		assert.Equal(t, "GOI", o.To)
		assert.True(t, airlineIDs[o.AirlineID])

		h, m := o.DepartureTime.Hour(), o.DepartureTime.Minute()
		assert.GreaterOrEqual(t, h, 5)
		assert.LessOrEqual(t, h, 22)
		assert.Zero(t, m%5)
		assert.Equal(t, 2026, o.DepartureTime.Year())
		assert.Equal(t, 1, o.DepartureTime.Day())

		assert.GreaterOrEqual(t, o.DurationMinutes, 90)
		assert.LessOrEqual(t, o.DurationMinutes, 240)

		assert.GreaterOrEqual(t, o.BasePrice, int64(2000))
		assert.LessOrEqual(t, o.BasePrice, int64(3000))
		assert.Equal(t, o.BasePrice, o.Price)

		assert.Zero(t, o.Attempts)
		assert.Nil(t, o.LastAttemptAt)
		assert.Contains(t, []int{0, 1}, o.Stops)
		stops += o.Stops
	}
	// roughly 30% one-stop
	assert.InDelta(t, 150, stops, 60)
}

func TestGenerate_SortedAndUniqueIDs(t *testing.T) {
	offers := newSeeded(3).Generate("DEL", "MAA", time.Now(), 200)

	ids := map[string]bool{}
	for i, o := range offers {
		assert.False(t, ids[o.ID], "duplicate id %s", o.ID)
		ids[o.ID] = true
		if i > 0 {
			assert.False(t, o.DepartureTime.Before(offers[i-1].DepartureTime))
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := newSeeded(99).Generate("DEL", "BOM", date, 10)
	b := newSeeded(99).Generate("DEL", "BOM", date, 10)
	assert.Equal(t, a, b)
}

func TestGenerate_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	date := time.Date(2026, 5, 1, 23, 30, 0, 0, loc)

	for _, o := range newSeeded(5).Generate("DEL", "BOM", date, 20) {
		assert.Equal(t, loc, o.DepartureTime.Location())
		assert.Equal(t, 1, o.DepartureTime.Day())
	}
}

func TestNew_NilSource(t *testing.T) {
	g := New(nil, []domain.Airline{{ID: "indigo", Name: "IndiGo"}})
	offers := g.Generate("DEL", "BOM", time.Now(), 3)
	assert.Len(t, offers, 3)
	for _, o := range offers {
		assert.Equal(t, "IndiGo", o.Airline)
	}
}
