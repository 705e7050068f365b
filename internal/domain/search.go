package domain

import (
	"fmt"
	"strings"
	"time"
)

type TimeBucket string

const (
	TimeBucketAny       TimeBucket = "any"
	TimeBucketMorning   TimeBucket = "morning"
	TimeBucketAfternoon TimeBucket = "afternoon"
	TimeBucketEvening   TimeBucket = "evening"
)

type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDuration  SortKey = "duration"
	SortByDeparture SortKey = "departure"
	SortByArrival   SortKey = "arrival"
)

// FilterConfig narrows and orders offers. MaxPrice 0 means no upper bound,
// an empty Airlines set allows every airline.
type FilterConfig struct {
	MinPrice  int64      `json:"min_price"`
	MaxPrice  int64      `json:"max_price"`
	Airlines  []string   `json:"airlines,omitempty"`
	Departure TimeBucket `json:"departure"`
	SortBy    SortKey    `json:"sort_by"`
}

func ParseTimeBucket(s string) (TimeBucket, error) {
	switch b := TimeBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return TimeBucketAny, nil
	case TimeBucketAny, TimeBucketMorning, TimeBucketAfternoon, TimeBucketEvening:
		return b, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown departure time bucket %q", s))
	}
}

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByPrice, nil
	case SortByPrice, SortByDuration, SortByDeparture, SortByArrival:
		return k, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown sort key %q", s))
	}
}

type SearchQuery struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Date       time.Time `json:"date"`
	Passengers int       `json:"passengers"`
	Class      string    `json:"class"`
	Count      int       `json:"count"`
}

// SearchSession keeps the offers of one search so that later filtering and
// booking attempts see the same listings.
type SearchSession struct {
	ID        string        `json:"id"`
	Query     SearchQuery   `json:"query"`
	Offers    []FlightOffer `json:"offers"`
	CreatedAt time.Time     `json:"created_at"`
}

// Offer returns a pointer into the session's offer slice.
func (s *SearchSession) Offer(id string) *FlightOffer {
	for i := range s.Offers {
		if s.Offers[i].ID == id {
			return &s.Offers[i]
		}
	}
	return nil
}
