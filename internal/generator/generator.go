package generator

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

const (
	DefaultCount = 10

	minDepartureHour = 5
	departureHours   = 18 // 05:00 through 22:55
	minuteStep       = 5

	minDurationMinutes = 90
	maxDurationMinutes = 240

	minBasePrice = 2000
	maxBasePrice = 3000

	directProbability = 0.7
	maxOfferNumber    = 10000
)

// Generator produces synthetic offers for a route and date. It is safe for
// concurrent use.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	airlines []domain.Airline
}

// New builds a generator over the given source. A nil source seeds from the
// runtime's random state.
func New(src rand.Source, airlines []domain.Airline) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rnd: rand.New(src), airlines: airlines}
}

// Generate always returns exactly count offers (DefaultCount when count <= 0),
// sorted by departure time.
func (g *Generator) Generate(from, to string, date time.Time, count int) []domain.FlightOffer {
	if count <= 0 {
		count = DefaultCount
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	year, month, day := date.Date()
	seen := make(map[string]struct{}, count)
	offers := make([]domain.FlightOffer, 0, count)

	for i := 0; i < count; i++ {
		airline := g.airlines[g.rnd.IntN(len(g.airlines))]

		hour := minDepartureHour + g.rnd.IntN(departureHours)
		minute := g.rnd.IntN(60/minuteStep) * minuteStep
		departure := time.Date(year, month, day, hour, minute, 0, 0, date.Location())

		duration := minDurationMinutes + g.rnd.IntN(maxDurationMinutes-minDurationMinutes+1)
		price := int64(minBasePrice + g.rnd.IntN(maxBasePrice-minBasePrice+1))

		stops := 0
		if g.rnd.Float64() > directProbability {
			stops = 1
		}

		offers = append(offers, domain.FlightOffer{
			ID:              g.offerID(seen, i),
			AirlineID:       airline.ID,
			Airline:         airline.Name,
			From:            from,
			To:              to,
			DepartureTime:   departure,
			ArrivalTime:     departure.Add(time.Duration(duration) * time.Minute),
			DurationMinutes: duration,
			BasePrice:       price,
			Price:           price,
			Stops:           stops,
		})
	}

	slices.SortStableFunc(offers, func(a, b domain.FlightOffer) int {
		return a.DepartureTime.Compare(b.DepartureTime)
	})
	return offers
}

// offerID draws FL-<n> ids that are unique within one result set.
func (g *Generator) offerID(seen map[string]struct{}, i int) string {
	if len(seen) >= maxOfferNumber {
		id := fmt.Sprintf("FL-%d", maxOfferNumber+i)
		seen[id] = struct{}{}
		return id
	}
	for {
		id := fmt.Sprintf("FL-%d", g.rnd.IntN(maxOfferNumber))
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return id
		}
	}
}
