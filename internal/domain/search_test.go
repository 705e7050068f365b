package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeBucket(t *testing.T) {
	b, err := ParseTimeBucket("")
	assert.NoError(t, err)
	assert.Equal(t, TimeBucketAny, b)

	b, err = ParseTimeBucket(" Evening ")
	assert.NoError(t, err)
	assert.Equal(t, TimeBucketEvening, b)

	_, err = ParseTimeBucket("night")
	assert.ErrorContains(t, err, "unknown departure time bucket")
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	assert.NoError(t, err)
	assert.Equal(t, SortByPrice, k)

	k, err = ParseSortKey("arrival")
	assert.NoError(t, err)
	assert.Equal(t, SortByArrival, k)

	_, err = ParseSortKey("stops")
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestSearchSession_Offer(t *testing.T) {
	s := &SearchSession{Offers: []FlightOffer{{ID: "FL-1", Price: 2000}, {ID: "FL-2", Price: 2500}}}

	o := s.Offer("FL-2")
	if assert.NotNil(t, o) {
		o.Price = 2750
	}
	assert.Equal(t, int64(2750), s.Offers[1].Price)
	assert.Nil(t, s.Offer("FL-3"))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "insufficient wallet balance: have 100, need 2500", (&InsufficientBalanceError{Balance: 100, Required: 2500}).Error())
	assert.Equal(t, `invalid amount "abc": must be a positive whole number`, (&InvalidAmountError{Input: "abc"}).Error())
	assert.Equal(t, "booking BK-1 not found", (&NotFoundError{Kind: "booking", ID: "BK-1"}).Error())
}
