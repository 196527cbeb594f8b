package weather

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"roadtrip/internal/cache"
)

// Fetcher returns live conditions for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*Report, error)
}

// Service serves weather from a short-lived cache, the live API, a long-lived
// fallback cache and finally a seasonal estimate. Only an empty city is an error.
type Service struct {
	fetcher  Fetcher
	fresh    cache.Store
	fallback cache.Store
	log      *zap.Logger
	now      func() time.Time
	intn     func(n int) int
}

var ErrEmptyCity = errors.New("weather: city is required")

// NewService wires the lookup tiers. fresh and fallback must be distinct stores.
func NewService(fetcher Fetcher, fresh, fallback cache.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		fetcher:  fetcher,
		fresh:    fresh,
		fallback: fallback,
		log:      log,
		now:      time.Now,
		intn:     rand.IntN,
	}
}

// Current returns conditions for city, preferring the fresh cache.
func (s *Service) Current(ctx context.Context, city string) (*Report, error) {
	return s.Lookup(ctx, city, false)
}

// Lookup returns conditions for city. forceFresh skips the fresh cache but still
// falls back when the live call fails.
func (s *Service) Lookup(ctx context.Context, city string, forceFresh bool) (*Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}
	key := "weather_" + strings.ToLower(city)

	if !forceFresh {
		var cached Report
		if ok, err := s.fresh.Get(ctx, key, &cached); err != nil {
			s.log.Warn("weather fresh cache read failed", zap.String("city", city), zap.Error(err))
		} else if ok {
			return &cached, nil
		}
	}

	report, err := s.fetcher.Fetch(ctx, city)
	if err == nil {
		if err := s.fresh.Set(ctx, key, report); err != nil {
			s.log.Warn("weather fresh cache write failed", zap.String("city", city), zap.Error(err))
		}
		if err := s.fallback.Set(ctx, key, report); err != nil {
			s.log.Warn("weather fallback cache write failed", zap.String("city", city), zap.Error(err))
		}
		return report, nil
	}
	s.log.Warn("weather fetch failed", zap.String("city", city), zap.Error(err))

	var stale Report
	if ok, cerr := s.fallback.Get(ctx, key, &stale); cerr == nil && ok {
		stale.Source = SourceFallback
		stale.Note = fallbackNote
		return &stale, nil
	}
	return s.synthetic(city), nil
}

// synthetic estimates conditions from the current month.
func (s *Service) synthetic(city string) *Report {
	var temp int
	var condition string
	switch m := s.now().Month(); {
	case m == time.December || m <= time.February:
		temp, condition = s.intn(10)-5, "ciel nuageux"
	case m <= time.May:
		temp, condition = 10+s.intn(10), "partiellement nuageux"
	case m <= time.September:
		temp, condition = 20+s.intn(15), "ensoleillé"
	default:
		temp, condition = 5+s.intn(15), "pluie légère"
	}
	return &Report{
		City:         city,
		TemperatureC: float64(temp),
		Condition:    condition,
		Humidity:     70 + s.intn(20),
		WindSpeedKmh: float64(s.intn(20)),
		ObservedAt:   s.now().UTC(),
		Source:       SourceSynthetic,
		Note:         syntheticNote,
	}
}
