// Package pricing implements the demand-based repricing of offers across
// repeated booking attempts.
//
// Each attempt on an offer either starts a new streak (first attempt, or the
// previous one is older than ResetAfter) or extends the current one. When a
// streak reaches Threshold attempts, each within HotWindow of the previous, the
// offer is surcharged once. Further attempts in the same streak do not compound
// because the surcharge only applies while the price still equals the base.
package pricing

import (
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/domain"
)

const (
	DefaultResetAfter       = 10 * time.Minute
	DefaultHotWindow        = 5 * time.Minute
	DefaultThreshold        = 3
	DefaultSurchargePercent = 10
)

type Policy struct {
	ResetAfter       time.Duration
	HotWindow        time.Duration
	Threshold        int
	SurchargePercent int64
}

func DefaultPolicy() Policy {
	return Policy{
		ResetAfter:       DefaultResetAfter,
		HotWindow:        DefaultHotWindow,
		Threshold:        DefaultThreshold,
		SurchargePercent: DefaultSurchargePercent,
	}
}

// PolicyFromConfig fills unset values with the defaults.
func PolicyFromConfig(cfg config.PricingConfig) Policy {
	p := DefaultPolicy()
	if cfg.ResetAfterMinutes > 0 {
		p.ResetAfter = time.Duration(cfg.ResetAfterMinutes) * time.Minute
	}
	if cfg.HotWindowMinutes > 0 {
		p.HotWindow = time.Duration(cfg.HotWindowMinutes) * time.Minute
	}
	if cfg.AttemptThreshold > 0 {
		p.Threshold = cfg.AttemptThreshold
	}
	if cfg.SurchargePercent > 0 {
		p.SurchargePercent = cfg.SurchargePercent
	}
	return p
}

// Attempt records a booking attempt on offer at now and reprices it.
func (p Policy) Attempt(offer *domain.FlightOffer, now time.Time) {
	if offer.LastAttemptAt == nil || now.Sub(*offer.LastAttemptAt) > p.ResetAfter {
		offer.Attempts = 1
		offer.Price = offer.BasePrice
	} else {
		sinceLast := now.Sub(*offer.LastAttemptAt)
		offer.Attempts++
		if sinceLast <= p.HotWindow && offer.Attempts >= p.Threshold && offer.Price == offer.BasePrice {
			offer.Price = p.Surcharged(offer.BasePrice)
		}
	}

	at := now
	offer.LastAttemptAt = &at
}

// AttemptByID applies Attempt to the offer with the given id only.
func (p Policy) AttemptByID(offers []domain.FlightOffer, id string, now time.Time) (*domain.FlightOffer, bool) {
	for i := range offers {
		if offers[i].ID == id {
			p.Attempt(&offers[i], now)
			return &offers[i], true
		}
	}
	return nil, false
}

// Surcharged rounds base * (100+SurchargePercent) / 100 half up.
func (p Policy) Surcharged(base int64) int64 {
	return (base*(100+p.SurchargePercent) + 50) / 100
}
