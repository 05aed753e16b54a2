package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/adapters/mq/queue"
	"github.com/rapporthq/rapport/internal/adapters/mq/worker"
	"github.com/rapporthq/rapport/internal/domain/model"
)

// recordingPrimer collects primed pairs.
type recordingPrimer struct {
	mu    sync.Mutex
	pairs []string
	err   error
}

func (p *recordingPrimer) Prime(_ context.Context, r worker.Request) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.pairs = append(p.pairs, r.Viewer.ID+"|"+r.Target.ID)
	return nil
}

func (p *recordingPrimer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pairs)
}

func (p *recordingPrimer) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func request(viewerID, targetID string) queue.Request {
	return queue.Request{
		Viewer: model.RawProfile{ID: viewerID},
		Target: model.RawProfile{ID: targetID},
	}
}

func eventually(check func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return check()
}

func TestWorkerProcessesRequests(t *testing.T) {
	Convey("Given a worker draining a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue()
		primer := &recordingPrimer{}
		w := worker.NewInMemoryWorker(q, primer, worker.WithName("test-worker"))

		go w.Run(ctx)

		Convey("When requests are enqueued", func() {
			So(q.Enqueue(ctx, request("a", "b")), ShouldBeTrue)
			So(q.Enqueue(ctx, request("c", "d")), ShouldBeTrue)

			Convey("Then every request is primed", func() {
				So(eventually(func() bool { return primer.count() == 2 }), ShouldBeTrue)
			})
		})

		Convey("When the primer fails on one request", func() {
			primer.setErr(errors.New("boom"))
			So(q.Enqueue(ctx, request("a", "b")), ShouldBeTrue)
			primer.setErr(nil)
			So(q.Enqueue(ctx, request("c", "d")), ShouldBeTrue)

			Convey("Then the worker keeps running and primes later requests", func() {
				So(eventually(func() bool { return primer.count() >= 1 }), ShouldBeTrue)
			})
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	Convey("Given a running worker", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue()
		primer := &recordingPrimer{}
		w := worker.NewInMemoryWorker(q, primer)

		go w.Run(ctx)

		Convey("Shutdown returns once the loop exits", func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()

			So(w.Shutdown(shutdownCtx), ShouldBeNil)
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue()
		primer := &recordingPrimer{}
		pool := worker.NewPool(4, q, primer)

		So(pool.Size(), ShouldEqual, 4)

		pool.Start(ctx)

		Convey("All enqueued requests are eventually primed", func() {
			for i := 0; i < 20; i++ {
				So(q.Enqueue(ctx, request("viewer", "target")), ShouldBeTrue)
			}

			So(eventually(func() bool { return primer.count() == 20 }), ShouldBeTrue)

			Convey("And shutdown drains cleanly", func() {
				So(pool.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}
