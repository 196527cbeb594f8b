package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"roadtrip/internal/ai"
	"roadtrip/internal/cache"
	"roadtrip/internal/maps"
	"roadtrip/internal/weather"
)

// WeatherSource returns current conditions for a place.
type WeatherSource interface {
	Current(ctx context.Context, city string) (*weather.Report, error)
}

// AttractionFinder lists popular attractions around a place.
type AttractionFinder interface {
	PopularAttractions(ctx context.Context, location string) ([]maps.Place, error)
}

// RouteEstimator returns a driving time and distance between two places.
type RouteEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string, waypoints ...string) (time.Duration, string, error)
}

// Deps are the collaborators of the advisor. LLM is required. Cache defaults to
// an in-memory store with a one hour TTL. Weather, Attractions and Routes are optional.
type Deps struct {
	Topics      TopicValidator
	LLM         ai.LLMProvider
	Cache       cache.Store
	Weather     WeatherSource
	Attractions AttractionFinder
	Routes      RouteEstimator
	Logger      *zap.Logger
	Now         func() time.Time
}

// Service turns roadtrip questions into itineraries or advice.
type Service struct {
	topics      TopicValidator
	llm         ai.LLMProvider
	cache       cache.Store
	weather     WeatherSource
	attractions AttractionFinder
	routes      RouteEstimator
	log         *zap.Logger
	now         func() time.Time
	tracer      trace.Tracer

	inflight singleflight.Group
}

func NewService(deps Deps) *Service {
	s := &Service{
		topics:      deps.Topics,
		llm:         deps.LLM,
		cache:       deps.Cache,
		weather:     deps.Weather,
		attractions: deps.Attractions,
		routes:      deps.Routes,
		log:         deps.Logger,
		now:         deps.Now,
		tracer:      otel.Tracer("roadtrip/advisor"),
	}
	if s.topics == nil {
		s.topics = NewKeywordValidator()
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryStore(time.Hour)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Advise answers req. It never returns nil; failures come back as the
// validation or technical variants. Validation and technical results are not cached.
func (s *Service) Advise(ctx context.Context, req Request) *Result {
	ctx, span := s.tracer.Start(ctx, "advisor.Advise")
	defer span.End()

	if !s.topics.InScope(req.Query) {
		span.SetAttributes(attribute.String("advisor.outcome", string(ValidationInvalidTopic)))
		return invalidTopic()
	}

	days, hasDays := effectiveDuration(req)
	if hasDays && days > MaxTripDays {
		span.SetAttributes(attribute.String("advisor.outcome", string(ValidationDurationExceeded)))
		return durationExceeded(days)
	}

	key := DeriveKey(req)
	span.SetAttributes(attribute.String("cache.key", key))

	var cached Result
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("advisor cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// Identical misses in flight share one generation. The shared call must not
	// die with whichever caller arrived first.
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.inflight.Do(key, func() (any, error) {
		return s.generate(shared, req, key, days), nil
	})
	return v.(*Result).Clone()
}

func (s *Service) generate(ctx context.Context, req Request, key string, days int) *Result {
	pc := PromptContext{Days: days}

	if req.Location != "" && req.IncludeWeather && s.weather != nil {
		if report, err := s.weather.Current(ctx, req.Location); err != nil {
			s.log.Warn("weather enrichment skipped", zap.String("location", req.Location), zap.Error(err))
		} else if report != nil {
			pc.Weather = &WeatherSnapshot{
				Place:        req.Location,
				Condition:    report.Condition,
				TemperatureC: report.TemperatureC,
				Source:       string(report.Source),
				Note:         report.Note,
			}
		}
	}

	if req.Location != "" && req.attractionsEnabled() && s.attractions != nil {
		places, err := s.attractions.PopularAttractions(ctx, req.Location)
		if err != nil {
			s.log.Warn("attraction enrichment skipped", zap.String("location", req.Location), zap.Error(err))
		}
		for _, p := range places {
			pc.Attractions = append(pc.Attractions, p.Name)
		}
	}

	prompt := BuildPrompt(req, pc)
	raw, err := s.llm.GenerateJSON(ctx, prompt.System, prompt.User)
	if err != nil {
		s.log.Error("advisor generation failed", zap.String("key", key), zap.Error(err))
		return technical(technicalMessage, fmt.Errorf("%w: %v", ErrUpstream, err))
	}
	if strings.TrimSpace(raw) == "" {
		s.log.Error("advisor generation returned no content", zap.String("key", key))
		return technical(noResponseMessage, ErrNoResponse)
	}

	res, err := Normalize(raw)
	if err != nil {
		s.log.Error("advisor response rejected", zap.String("key", key), zap.Error(err))
		return technical(technicalMessage, err)
	}

	now := s.now().UTC()
	res.GeneratedAt = now
	res.Location = req.Location
	res.Attractions = pc.Attractions
	res.Metadata = &Metadata{
		GeneratedAt: now,
		Location:    orDefault(req.Location, "non spécifié"),
		Duration:    durationLabel(req.Duration),
		Budget:      orDefault(string(req.Budget), "non spécifié"),
		Style:       orDefault(req.TravelStyle, "standard"),
	}
	if res.Itinerary != nil && pc.Weather != nil {
		res.Itinerary.CurrentWeather = pc.Weather
	}

	if err := s.cache.Set(ctx, key, res); err != nil {
		s.log.Warn("advisor cache write failed", zap.String("key", key), zap.Error(err))
	}
	return res
}

// PlanDetailedItinerary builds a point-to-point question and answers it with
// weather, attractions and driving tips enabled. The error is non-nil only for
// missing endpoints.
func (s *Service) PlanDetailedItinerary(ctx context.Context, req ItineraryRequest) (*Result, error) {
	if strings.TrimSpace(req.StartPoint) == "" || strings.TrimSpace(req.EndPoint) == "" {
		return nil, ErrMissingEndpoints
	}
	days := req.Duration
	if days <= 0 {
		days = 7
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Crée un itinéraire de roadtrip détaillé de %s à %s", req.StartPoint, req.EndPoint)
	if len(req.Waypoints) > 0 {
		fmt.Fprintf(&b, " en passant par %s", strings.Join(req.Waypoints, ", "))
	}
	fmt.Fprintf(&b, " pour un voyage de %d jours", days)
	if req.TravelStyle != "" {
		fmt.Fprintf(&b, " de style %s", req.TravelStyle)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, " avec intérêt pour %s", strings.Join(req.Interests, ", "))
	}
	b.WriteString(". Inclus les distances entre les étapes, les temps de conduite estimés et les attractions incontournables.")

	if s.routes != nil {
		d, dist, err := s.routes.GetTravelEstimate(ctx, req.StartPoint, req.EndPoint, req.Waypoints...)
		if err != nil {
			s.log.Warn("route estimate skipped", zap.String("origin", req.StartPoint), zap.String("destination", req.EndPoint), zap.Error(err))
		} else {
			fmt.Fprintf(&b, " Distance totale par la route : %s, environ %s de conduite.", dist, formatDrive(d))
		}
	}

	return s.Advise(ctx, Request{
		Query:          b.String(),
		Location:       req.EndPoint,
		Duration:       days,
		TravelStyle:    req.TravelStyle,
		Interests:      req.Interests,
		IncludeWeather: true,
	}), nil
}

func formatDrive(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}

func durationLabel(days int) string {
	if days <= 0 {
		return "non spécifié"
	}
	return fmt.Sprintf("%d jours", days)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
