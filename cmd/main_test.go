package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/adapters/http/api"
	"github.com/rapporthq/rapport/internal/adapters/http/swagger"
	app "github.com/rapporthq/rapport/internal/app"
	"github.com/rapporthq/rapport/internal/config"
	"github.com/rapporthq/rapport/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("RAPPORT_CONFIG", "")
			t.Setenv("RAPPORT_ADDR", ":8080")
			t.Setenv("RAPPORT_QUEUE_SIZE", "1000")
			t.Setenv("RAPPORT_WORKER_COUNT", "4")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
					app.WithCacheCapacity(100),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing route registration", func() {
			mux := http.NewServeMux()
			svc := app.New()
			server := api.NewServer(svc)

			convey.Convey("Then routes should register without panicking", func() {
				ctx := context.Background()
				convey.So(func() {
					swagger.Register(ctx, mux)
					server.Register(ctx, mux)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}
