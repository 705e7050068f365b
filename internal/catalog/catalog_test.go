package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirlines(t *testing.T) {
	list := Airlines()
	assert.Len(t, list, 5)
	assert.Equal(t, "indigo", list[0].ID)

	list[0].Name = "changed"
	assert.Equal(t, "IndiGo", Airlines()[0].Name)
}

func TestAirport(t *testing.T) {
	a, ok := Airport(" del ")
	assert.True(t, ok)
	assert.Equal(t, "Delhi", a.City)

	_, ok = Airport("XXX")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	assert.Empty(t, Suggest("d"))

	byCity := Suggest("mum")
	if assert.Len(t, byCity, 1) {
		assert.Equal(t, "BOM", byCity[0].Code)
	}

	byCode := Suggest("GOI")
	if assert.Len(t, byCode, 1) {
		assert.Equal(t, "Goa", byCode[0].City)
	}

	// "international" appears in many airport names
	assert.Greater(t, len(Suggest("International")), 10)
	assert.Empty(t, Suggest("zzzz"))
}
