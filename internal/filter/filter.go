package filter

import (
	"cmp"
	"slices"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

// Apply returns the offers matching cfg, ordered ascending by cfg.SortBy.
// The input slice is left untouched and applying the same cfg twice gives
// the same result.
func Apply(offers []domain.FlightOffer, cfg domain.FilterConfig) []domain.FlightOffer {
	allowed := make(map[string]struct{}, len(cfg.Airlines))
	for _, id := range cfg.Airlines {
		allowed[id] = struct{}{}
	}

	out := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if o.Price < cfg.MinPrice || (cfg.MaxPrice > 0 && o.Price > cfg.MaxPrice) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[o.AirlineID]; !ok {
				continue
			}
		}
		if !InBucket(o.DepartureTime, cfg.Departure) {
			continue
		}
		out = append(out, o)
	}

	slices.SortStableFunc(out, compareBy(cfg.SortBy))
	return out
}

// InBucket reports whether t falls into the time-of-day bucket. Evening wraps
// past midnight up to 05:00.
func InBucket(t time.Time, b domain.TimeBucket) bool {
	h := t.Hour()
	switch b {
	case domain.TimeBucketMorning:
		return h >= 5 && h < 12
	case domain.TimeBucketAfternoon:
		return h >= 12 && h < 18
	case domain.TimeBucketEvening:
		return h >= 18 || h < 5
	default:
		return true
	}
}

// PriceBounds returns the lowest and highest current price, zeros for an empty set.
func PriceBounds(offers []domain.FlightOffer) (minPrice, maxPrice int64) {
	for i, o := range offers {
		if i == 0 || o.Price < minPrice {
			minPrice = o.Price
		}
		if i == 0 || o.Price > maxPrice {
			maxPrice = o.Price
		}
	}
	return minPrice, maxPrice
}

func compareBy(key domain.SortKey) func(a, b domain.FlightOffer) int {
	var primary func(a, b domain.FlightOffer) int
	switch key {
	case domain.SortByDuration:
		primary = func(a, b domain.FlightOffer) int { return cmp.Compare(a.Duration(), b.Duration()) }
	case domain.SortByDeparture:
		primary = func(a, b domain.FlightOffer) int { return a.DepartureTime.Compare(b.DepartureTime) }
	case domain.SortByArrival:
		primary = func(a, b domain.FlightOffer) int { return a.ArrivalTime.Compare(b.ArrivalTime) }
	default:
		primary = func(a, b domain.FlightOffer) int { return cmp.Compare(a.Price, b.Price) }
	}

	return func(a, b domain.FlightOffer) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		if c := a.DepartureTime.Compare(b.DepartureTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}
