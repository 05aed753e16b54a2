package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/app"
	"github.com/rapporthq/rapport/internal/domain/model"
)

func pairRequest() model.PairRequest {
	return model.PairRequest{
		Viewer: model.RawProfile{
			ID:          "alice",
			Headline:    "Data Analyst",
			Location:    "Sunnyvale, California",
			Skills:      []string{"Python", "SQL"},
			Experience:  []model.Position{{Duration: "5 yrs"}},
			Connections: 500,
		},
		Target: model.RawProfile{
			ID:          "bob",
			Headline:    "Staff Data Scientist",
			Location:    "San Francisco Bay Area",
			Skills:      []string{"Python", "SQL", "Spark"},
			Experience:  []model.Position{{Duration: "8 yrs"}},
			Connections: 1200,
		},
	}
}

func startedService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestScorePipeline(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t)
		ctx := context.Background()

		Convey("When scoring a well-formed pair", func() {
			result, cached, err := svc.Score(ctx, pairRequest())

			Convey("Then a complete result is produced", func() {
				So(err, ShouldBeNil)
				So(cached, ShouldBeFalse)
				So(result.Score, ShouldBeBetweenOrEqual, 0, 100)
				So(result.Tier, ShouldNotBeEmpty)
				So(result.Explanation, ShouldNotBeEmpty)
				So(len(result.Features), ShouldEqual, len(model.FactorNames))
				So(result.WeightsVersion, ShouldEqual, "v3")
			})

			Convey("Then the role affinity is attached with its reason", func() {
				So(err, ShouldBeNil)
				So(result.RoleAffinity, ShouldNotBeNil)
				So(result.RoleAffinity.Kind, ShouldEqual, model.AffinitySameFamily)
				So(result.RoleAffinity.Reason, ShouldNotBeEmpty)
			})
		})

		Convey("When scoring a pair with no usable fields", func() {
			result, _, err := svc.Score(ctx, model.PairRequest{})

			Convey("Then scoring still succeeds with defaults", func() {
				So(err, ShouldBeNil)
				So(result.Score, ShouldBeBetweenOrEqual, 0, 100)
			})
		})

		Convey("When a red flag accompanies the request", func() {
			clean, _, err := svc.Score(ctx, pairRequest())
			So(err, ShouldBeNil)

			flagged := pairRequest()
			flagged.RedFlagScore = 90
			penalized, _, err := svc.Score(ctx, flagged)
			So(err, ShouldBeNil)

			Convey("Then the flagged score is lower", func() {
				So(penalized.Score, ShouldBeLessThan, clean.Score)
			})
		})
	})
}

func TestScoreCaching(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t)
		ctx := context.Background()

		first, cached1, err1 := svc.Score(ctx, pairRequest())
		second, cached2, err2 := svc.Score(ctx, pairRequest())

		Convey("The second lookup is served from the cache unchanged", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(cached1, ShouldBeFalse)
			So(cached2, ShouldBeTrue)
			So(second, ShouldResemble, first)
		})

		Convey("Swapping the pair order is a distinct cache key", func() {
			req := pairRequest()
			req.Viewer, req.Target = req.Target, req.Viewer

			_, cached, err := svc.Score(ctx, req)

			So(err, ShouldBeNil)
			So(cached, ShouldBeFalse)
		})
	})
}

func TestScoreDeterminism(t *testing.T) {
	Convey("Identical requests yield identical results across services", t, func() {
		ctx := context.Background()
		svcA := startedService(t)
		svcB := startedService(t)

		a, _, errA := svcA.Score(ctx, pairRequest())
		b, _, errB := svcB.Score(ctx, pairRequest())

		So(errA, ShouldBeNil)
		So(errB, ShouldBeNil)
		So(a, ShouldResemble, b)
	})
}

func TestConcurrentScoring(t *testing.T) {
	Convey("Given many concurrent requests for the same pair", t, func() {
		svc := startedService(t)
		ctx := context.Background()

		const callers = 32
		results := make([]model.ScoreResult, callers)
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				r, _, err := svc.Score(ctx, pairRequest())
				if err == nil {
					results[i] = r
				}
			}(i)
		}
		wg.Wait()

		Convey("Every caller observes the same score", func() {
			for i := 1; i < callers; i++ {
				So(results[i].Score, ShouldEqual, results[0].Score)
				So(results[i].Tier, ShouldEqual, results[0].Tier)
			}
		})
	})
}

func TestPrewarm(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t, app.WithWorkerCount(2))
		ctx := context.Background()

		Convey("An enqueued pair is eventually scored into the cache", func() {
			So(svc.EnqueuePrewarm(ctx, pairRequest()), ShouldBeTrue)

			deadline := time.Now().Add(2 * time.Second)
			warmed := false
			for time.Now().Before(deadline) {
				if _, cached, err := svc.Score(ctx, pairRequest()); err == nil && cached {
					warmed = true
					break
				}
				time.Sleep(10 * time.Millisecond)
			}

			So(warmed, ShouldBeTrue)
		})
	})
}

func TestRecommenderDegradation(t *testing.T) {
	Convey("Given a service whose recommender always fails", t, func() {
		svc := startedService(t, app.WithRecommender(failingRecommender{}))

		result, _, err := svc.Score(context.Background(), pairRequest())

		Convey("The heuristic result is still served", func() {
			So(err, ShouldBeNil)
			So(result.Score, ShouldBeBetweenOrEqual, 0, 100)
			So(result.Recommendation, ShouldBeEmpty)
		})
	})

	Convey("Given a working recommender", t, func() {
		svc := startedService(t, app.WithRecommender(staticRecommender("reach out this week")))

		result, _, err := svc.Score(context.Background(), pairRequest())

		Convey("Its text is attached to the result", func() {
			So(err, ShouldBeNil)
			So(result.Recommendation, ShouldEqual, "reach out this week")
		})
	})
}

func TestStatsAndLifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t, app.WithWorkerCount(3))
		ctx := context.Background()

		_, _, err := svc.Score(ctx, pairRequest())
		So(err, ShouldBeNil)

		Convey("Stats reflect the cache and pool", func() {
			stats := svc.GetStats(ctx)

			So(stats.CacheEntries, ShouldEqual, 1)
			So(stats.Workers, ShouldEqual, 3)
			So(stats.WeightsVersion, ShouldEqual, "v3")
		})
	})

	Convey("An unstarted service refuses to score", t, func() {
		svc := app.New()

		_, _, err := svc.Score(context.Background(), pairRequest())

		So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)
	})
}

type failingRecommender struct{}

func (failingRecommender) Recommend(context.Context, model.ScoreResult) (string, error) {
	return "", errors.New("model unavailable")
}

type staticRecommender string

func (r staticRecommender) Recommend(context.Context, model.ScoreResult) (string, error) {
	return string(r), nil
}
