package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Domenick1991/flightdesk/internal/catalog"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/filter"
	"github.com/Domenick1991/flightdesk/internal/pricing"
)

const (
	DefaultCount   = 10
	MaxCount       = 50
	MaxPassengers  = 9
	DefaultClass   = "Economy"
	sessionLockTTL = 2 * time.Second
	lockRetries    = 5
	lockBackoff    = 20 * time.Millisecond
)

var TravelClasses = []string{"Economy", "Premium Economy", "Business", "First"}

var ErrSessionBusy = errors.New("search session is busy, retry")

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) (*SearchResult, error)
	Offers(ctx context.Context, sessionID string, cfg domain.FilterConfig) ([]domain.FlightOffer, error)
	GetOffer(ctx context.Context, sessionID, offerID string) (*domain.SearchSession, *domain.FlightOffer, error)
	Attempt(ctx context.Context, sessionID, offerID string) (*domain.FlightOffer, error)
	Airports(query string) []domain.Airport
}

// SessionCache holds search sessions between requests.
type SessionCache interface {
	GetSession(ctx context.Context, id string) (*domain.SearchSession, error)
	SaveSession(ctx context.Context, session *domain.SearchSession) error
	AcquireSessionLock(ctx context.Context, id, token string, ttl time.Duration) (bool, error)
	ReleaseSessionLock(ctx context.Context, id, token string) error
}

type OfferGenerator interface {
	Generate(from, to string, date time.Time, count int) []domain.FlightOffer
}

type SearchInput struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	Passengers int    `json:"passengers"`
	Class      string `json:"class"`
	Count      int    `json:"count"`
}

type SearchResult struct {
	SessionID string               `json:"session_id"`
	Query     domain.SearchQuery   `json:"query"`
	Offers    []domain.FlightOffer `json:"offers"`
	MinPrice  int64                `json:"min_price"`
	MaxPrice  int64                `json:"max_price"`
}

type FlightService struct {
	cache        SessionCache
	generator    OfferGenerator
	policy       pricing.Policy
	defaultCount int
	maxCount     int
	now          func() time.Time
}

type FlightServiceOption func(*FlightService)

func WithPolicy(p pricing.Policy) FlightServiceOption {
	return func(s *FlightService) {
		s.policy = p
	}
}

func WithCounts(defaultCount, maxCount int) FlightServiceOption {
	return func(s *FlightService) {
		if defaultCount > 0 {
			s.defaultCount = defaultCount
		}
		if maxCount > 0 {
			s.maxCount = maxCount
		}
	}
}

func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.now = now
	}
}

func NewFlightService(cache SessionCache, generator OfferGenerator, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		cache:        cache,
		generator:    generator,
		policy:       pricing.DefaultPolicy(),
		defaultCount: DefaultCount,
		maxCount:     MaxCount,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Airports(query string) []domain.Airport {
	return catalog.Suggest(query)
}

// Search validates the query, generates offers and stores them as a new session.
func (s *FlightService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	query, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	session := &domain.SearchSession{
		ID:        uuid.NewString(),
		Query:     query,
		Offers:    s.generator.Generate(query.From, query.To, query.Date, query.Count),
		CreatedAt: s.now(),
	}
	if err := s.cache.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save search session: %w", err)
	}

	minPrice, maxPrice := filter.PriceBounds(session.Offers)
	return &SearchResult{
		SessionID: session.ID,
		Query:     query,
		Offers:    session.Offers,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
	}, nil
}

func (s *FlightService) Offers(ctx context.Context, sessionID string, cfg domain.FilterConfig) ([]domain.FlightOffer, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return filter.Apply(session.Offers, cfg), nil
}

func (s *FlightService) GetOffer(ctx context.Context, sessionID, offerID string) (*domain.SearchSession, *domain.FlightOffer, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	offer := session.Offer(offerID)
	if offer == nil {
		return nil, nil, &domain.NotFoundError{Kind: "offer", ID: offerID}
	}
	return session, offer, nil
}

// Attempt records a booking attempt on one offer and returns it repriced.
// The session is rewritten under a lock so concurrent attempts are not lost.
func (s *FlightService) Attempt(ctx context.Context, sessionID, offerID string) (*domain.FlightOffer, error) {
	token := uuid.NewString()
	if err := s.lock(ctx, sessionID, token); err != nil {
		return nil, err
	}
	defer func() {
		_ = s.cache.ReleaseSessionLock(ctx, sessionID, token)
	}()

	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	offer, ok := s.policy.AttemptByID(session.Offers, offerID, s.now())
	if !ok {
		return nil, &domain.NotFoundError{Kind: "offer", ID: offerID}
	}
	if err := s.cache.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save search session: %w", err)
	}
	updated := *offer
	return &updated, nil
}

func (s *FlightService) session(ctx context.Context, id string) (*domain.SearchSession, error) {
	session, err := s.cache.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load search session: %w", err)
	}
	if session == nil {
		return nil, &domain.NotFoundError{Kind: "search session", ID: id}
	}
	return session, nil
}

func (s *FlightService) lock(ctx context.Context, id, token string) error {
	for i := 0; i < lockRetries; i++ {
		ok, err := s.cache.AcquireSessionLock(ctx, id, token, sessionLockTTL)
		if err != nil {
			return fmt.Errorf("lock search session: %w", err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockBackoff * time.Duration(i+1)):
		}
	}
	return ErrSessionBusy
}

func (s *FlightService) validate(in SearchInput) (domain.SearchQuery, error) {
	var problems []string
	q := domain.SearchQuery{
		From:       strings.ToUpper(strings.TrimSpace(in.From)),
		To:         strings.ToUpper(strings.TrimSpace(in.To)),
		Passengers: in.Passengers,
		Class:      strings.TrimSpace(in.Class),
		Count:      in.Count,
	}

	switch {
	case q.From == "":
		problems = append(problems, "origin is required")
	case !known(q.From):
		problems = append(problems, fmt.Sprintf("unknown origin airport %q", q.From))
	}
	switch {
	case q.To == "":
		problems = append(problems, "destination is required")
	case !known(q.To):
		problems = append(problems, fmt.Sprintf("unknown destination airport %q", q.To))
	}
	if q.From != "" && q.From == q.To {
		problems = append(problems, "origin and destination must differ")
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		problems = append(problems, err.Error())
	}
	q.Date = date

	if q.Passengers == 0 {
		q.Passengers = 1
	}
	if q.Passengers < 1 || q.Passengers > MaxPassengers {
		problems = append(problems, fmt.Sprintf("passengers must be between 1 and %d", MaxPassengers))
	}

	if q.Class == "" {
		q.Class = DefaultClass
	} else if c, ok := travelClass(q.Class); ok {
		q.Class = c
	} else {
		problems = append(problems, fmt.Sprintf("unknown travel class %q", in.Class))
	}

	if q.Count == 0 {
		q.Count = s.defaultCount
	}
	if q.Count < 1 || q.Count > s.maxCount {
		problems = append(problems, fmt.Sprintf("count must be between 1 and %d", s.maxCount))
	}

	if len(problems) > 0 {
		return domain.SearchQuery{}, domain.NewValidationError(problems...)
	}
	return q, nil
}

// ParseDate accepts a calendar date (2006-01-02, UTC) or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func known(code string) bool {
	_, ok := catalog.Airport(code)
	return ok
}

func travelClass(raw string) (string, bool) {
	for _, c := range TravelClasses {
		if strings.EqualFold(c, raw) {
			return c, true
		}
	}
	return "", false
}

var _ FlightUseCase = (*FlightService)(nil)
