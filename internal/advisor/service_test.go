// README: Advisor orchestration tests (validation gates, caching, coalescing, enrichment).
package advisor_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"roadtrip/internal/advisor"
	"roadtrip/internal/ai/mocks"
	"roadtrip/internal/cache"
	"roadtrip/internal/maps"
	"roadtrip/internal/weather"
)

var fixedNow = time.Date(2026, time.July, 14, 9, 30, 0, 0, time.UTC)

const adviceJSON = `{"type":"roadtrip_advice","sujet":"Van","reponse":"Louez un van aménagé.","recommandations":["Réservez tôt"],"ressources_utiles":[]}`

const itineraryJSON = `{"type":"roadtrip_itinerary","destination":"Écosse","duree_recommandee":"5 jours",
"budget_estime":{"montant":"1200€","details":{"hebergement":"80€/jour","nourriture":"40€/jour","carburant":"30€/jour","activites":"20€/jour"}},
"saison_ideale":"Été","itineraire":[{"jour":1,"trajet":"Édimbourg → Fort William","distance":"230 km","etapes_recommandees":["Stirling","Glencoe"],"hebergement":"B&B","activites":["Château de Stirling"]}],
"conseils_route":["Roulez à gauche"],"equipement_essentiel":["Imperméable"]}`

type stubWeather struct {
	report *weather.Report
	err    error
}

func (s stubWeather) Current(context.Context, string) (*weather.Report, error) {
	return s.report, s.err
}

type stubAttractions struct {
	places []maps.Place
	err    error
}

func (s stubAttractions) PopularAttractions(context.Context, string) ([]maps.Place, error) {
	return s.places, s.err
}

type stubRoutes struct{}

func (stubRoutes) GetTravelEstimate(context.Context, string, string, ...string) (time.Duration, string, error) {
	return 5*time.Hour + 20*time.Minute, "463 km", nil
}

type fixture struct {
	svc   *advisor.Service
	llm   *mocks.MockLLMProvider
	store *cache.MemoryStore
}

func newFixture(t *testing.T, mutate func(*advisor.Deps)) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	llm := mocks.NewMockLLMProvider(ctrl)
	store := cache.NewMemoryStore(time.Hour)
	deps := advisor.Deps{
		LLM:   llm,
		Cache: store,
		Now:   func() time.Time { return fixedNow },
	}
	if mutate != nil {
		mutate(&deps)
	}
	return fixture{svc: advisor.NewService(deps), llm: llm, store: store}
}

func TestAdviseInvalidTopicSkipsModel(t *testing.T) {
	f := newFixture(t, nil)
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "Quelle est la capitale de l'Espagne ?"})
	if res.Kind != advisor.KindValidation || res.Validation.Kind != advisor.ValidationInvalidTopic {
		t.Fatalf("expected invalid_topic, got %+v", res)
	}
	if !errors.Is(res.Err(), advisor.ErrInvalidTopic) {
		t.Fatalf("Err() = %v, want ErrInvalidTopic", res.Err())
	}
	if f.store.Len() != 0 {
		t.Fatalf("validation errors must not be cached")
	}
}

func TestAdviseDurationExceeded(t *testing.T) {
	f := newFixture(t, nil)
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := advisor.Request{Query: "roadtrip en France pendant 20 jours"}
	res := f.svc.Advise(context.Background(), req)
	if res.Kind != advisor.KindValidation {
		t.Fatalf("expected validation error, got %+v", res)
	}
	v := res.Validation
	if v.Kind != advisor.ValidationDurationExceeded || v.MaxDuration != 14 || v.RequestedDuration != 20 {
		t.Fatalf("unexpected validation payload %+v", v)
	}
	var cached advisor.Result
	if ok, _ := f.store.Get(context.Background(), advisor.DeriveKey(req), &cached); ok {
		t.Fatalf("duration_exceeded must not create a cache entry")
	}
	if f.store.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", f.store.Len())
	}
}

func TestAdviseExplicitDurationExceeded(t *testing.T) {
	f := newFixture(t, nil)
	res := f.svc.Advise(context.Background(), advisor.Request{Query: "roadtrip en Islande", Duration: 15})
	if res.Validation == nil || res.Validation.RequestedDuration != 15 {
		t.Fatalf("expected requested_duration 15, got %+v", res)
	}
}

func TestAdviseHugeTextDurationIsRefused(t *testing.T) {
	f := newFixture(t, nil)
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "roadtrip de 400000000000000000 mois"})
	if res.Kind != advisor.KindValidation || res.Validation.Kind != advisor.ValidationDurationExceeded {
		t.Fatalf("expected duration_exceeded, got %+v", res)
	}
	if res.Validation.RequestedDuration <= advisor.MaxTripDays {
		t.Fatalf("requested duration %d should exceed the limit", res.Validation.RequestedDuration)
	}
	if f.store.Len() != 0 {
		t.Fatalf("validation errors must not be cached")
	}
}

func TestNewServiceDefaultsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mocks.NewMockLLMProvider(ctrl)
	llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(adviceJSON, nil).Times(1)
	svc := advisor.NewService(advisor.Deps{LLM: llm})

	req := advisor.Request{Query: "Quel van pour un roadtrip ?"}
	for i := 0; i < 2; i++ {
		if res := svc.Advise(context.Background(), req); res.Kind != advisor.KindAdvice {
			t.Fatalf("call %d: expected advice, got %+v", i, res)
		}
	}
}

func TestResultOmitsEmptyAttractions(t *testing.T) {
	f := newFixture(t, nil)
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(adviceJSON, nil)

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "Quel van pour un roadtrip ?"})
	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"attractions"`) {
		t.Fatalf("advice without attractions should not serialise the field: %s", raw)
	}
}

func TestAdviseCachesAndReturnsCopies(t *testing.T) {
	f := newFixture(t, nil)
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), "roadtrip en Écosse de 5 jours").
		Return(itineraryJSON, nil).Times(1)

	req := advisor.Request{Query: "roadtrip en Écosse de 5 jours", Interests: []string{"châteaux", "whisky"}}
	first := f.svc.Advise(context.Background(), req)
	if first.Kind != advisor.KindItinerary {
		t.Fatalf("expected itinerary, got %+v", first)
	}
	if !first.GeneratedAt.Equal(fixedNow) || first.Metadata == nil || first.Metadata.Style != "standard" {
		t.Fatalf("unexpected merged fields %+v", first)
	}

	second := f.svc.Advise(context.Background(), advisor.Request{Query: req.Query, Interests: []string{"whisky", "châteaux"}})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	second.Itinerary.Days[0].Activities[0] = "mutated"
	third := f.svc.Advise(context.Background(), req)
	if third.Itinerary.Days[0].Activities[0] != "Château de Stirling" {
		t.Fatalf("callers must receive copies, got %q", third.Itinerary.Days[0].Activities[0])
	}
}

func TestAdviseTechnicalErrorsAreNotCached(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		err     error
		wantErr error
	}{
		{"empty content", "", nil, advisor.ErrNoResponse},
		{"blank content", "  \n", nil, advisor.ErrNoResponse},
		{"malformed json", `{"type": "roadtrip_itinerary", "itineraire": [`, nil, advisor.ErrMalformedResponse},
		{"provider error", "", errors.New("429 rate limited"), advisor.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.raw, tt.err).Times(2)

			req := advisor.Request{Query: "conseils pour un roadtrip en van"}
			for i := 0; i < 2; i++ {
				res := f.svc.Advise(context.Background(), req)
				if res.Kind != advisor.KindTechnical {
					t.Fatalf("expected technical error, got %+v", res)
				}
				if !errors.Is(res.Err(), tt.wantErr) {
					t.Fatalf("Err() = %v, want %v", res.Err(), tt.wantErr)
				}
			}
			if f.store.Len() != 0 {
				t.Fatalf("technical errors must not be cached")
			}
		})
	}
}

func TestAdviseCoalescesConcurrentMisses(t *testing.T) {
	f := newFixture(t, nil)
	release := make(chan struct{})
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (string, error) {
			<-release
			return adviceJSON, nil
		}).Times(1)

	req := advisor.Request{Query: "quel van louer pour un roadtrip ?"}
	const callers = 8
	results := make([]*advisor.Result, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.svc.Advise(context.Background(), req)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, r := range results {
		if r.Kind != advisor.KindAdvice || r.Advice.Answer != "Louez un van aménagé." {
			t.Fatalf("caller %d got %+v", i, r)
		}
	}
}

func TestAdviseWeatherEnrichment(t *testing.T) {
	report := &weather.Report{City: "Inverness", Condition: "pluie légère", TemperatureC: 11.5, Source: weather.SourceSynthetic, Note: "estimation"}
	f := newFixture(t, func(d *advisor.Deps) {
		d.Weather = stubWeather{report: report}
		d.Attractions = stubAttractions{places: []maps.Place{{Name: "Loch Ness"}, {Name: "Culloden"}}}
	})
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system, _ string) (string, error) {
			if !strings.Contains(system, "pluie légère, 11.5°C") {
				t.Errorf("weather missing from prompt")
			}
			if !strings.Contains(system, "Loch Ness, Culloden") {
				t.Errorf("attractions missing from prompt")
			}
			return itineraryJSON, nil
		})

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "roadtrip Écosse", Location: "Inverness", IncludeWeather: true})
	w := res.Itinerary.CurrentWeather
	if w == nil || w.Place != "Inverness" || w.Source != string(weather.SourceSynthetic) {
		t.Fatalf("expected synthetic weather snapshot, got %+v", w)
	}
	if !reflect.DeepEqual(res.Attractions, []string{"Loch Ness", "Culloden"}) {
		t.Fatalf("unexpected attractions %v", res.Attractions)
	}
}

func TestAdviseEnrichmentFailuresAreAbsorbed(t *testing.T) {
	f := newFixture(t, func(d *advisor.Deps) {
		d.Weather = stubWeather{err: errors.New("timeout")}
		d.Attractions = stubAttractions{err: errors.New("quota")}
	})
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system, _ string) (string, error) {
			if strings.Contains(system, "Informations supplémentaires") {
				t.Errorf("no enrichment expected in prompt")
			}
			return itineraryJSON, nil
		})

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "roadtrip Écosse", Location: "Inverness", IncludeWeather: true})
	if res.Kind != advisor.KindItinerary || res.Itinerary.CurrentWeather != nil {
		t.Fatalf("expected itinerary without weather, got %+v", res)
	}
}

func TestAdviseSkipsWeatherWithoutFlag(t *testing.T) {
	f := newFixture(t, func(d *advisor.Deps) {
		d.Weather = stubWeather{err: errors.New("should not be called")}
	})
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).Return(itineraryJSON, nil)

	res := f.svc.Advise(context.Background(), advisor.Request{Query: "roadtrip Écosse", Location: "Inverness"})
	if res.Itinerary.CurrentWeather != nil {
		t.Fatalf("weather must only be fetched when requested")
	}
}

func TestPlanDetailedItinerary(t *testing.T) {
	f := newFixture(t, func(d *advisor.Deps) { d.Routes = stubRoutes{} })
	f.llm.EXPECT().GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system, user string) (string, error) {
			for _, want := range []string{"de Lyon à Nice", "en passant par Grenoble, Gap", "7 jours", "463 km", "5h20"} {
				if !strings.Contains(user, want) {
					t.Errorf("query missing %q: %s", want, user)
				}
			}
			return itineraryJSON, nil
		})

	res, err := f.svc.PlanDetailedItinerary(context.Background(), advisor.ItineraryRequest{
		StartPoint: "Lyon", EndPoint: "Nice", Waypoints: []string{"Grenoble", "Gap"},
	})
	if err != nil {
		t.Fatalf("PlanDetailedItinerary: %v", err)
	}
	if res.Kind != advisor.KindItinerary || res.Location != "Nice" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPlanDetailedItineraryValidation(t *testing.T) {
	f := newFixture(t, nil)
	if _, err := f.svc.PlanDetailedItinerary(context.Background(), advisor.ItineraryRequest{EndPoint: "Nice"}); !errors.Is(err, advisor.ErrMissingEndpoints) {
		t.Fatalf("expected ErrMissingEndpoints, got %v", err)
	}
	res, err := f.svc.PlanDetailedItinerary(context.Background(), advisor.ItineraryRequest{StartPoint: "Lyon", EndPoint: "Nice", Duration: 21})
	if err != nil {
		t.Fatalf("PlanDetailedItinerary: %v", err)
	}
	if res.Validation == nil || res.Validation.RequestedDuration != 21 {
		t.Fatalf("expected duration_exceeded, got %+v", res)
	}
}
