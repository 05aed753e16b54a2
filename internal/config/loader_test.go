package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		t.Setenv("RAPPORT_CONFIG", "")

		cfg, err := config.Load(context.Background())

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.CacheCapacity, ShouldEqual, 1000)
			So(cfg.CacheTTL, ShouldEqual, 24*time.Hour)
			So(cfg.WeightsVersion, ShouldEqual, "v3")
			So(cfg.Weights, ShouldBeEmpty)
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := "addr: \":7070\"\ncache_capacity: 50\ncache_ttl: 30m\nweights_version: v4\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		t.Setenv("RAPPORT_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values override the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.CacheCapacity, ShouldEqual, 50)
			So(cfg.CacheTTL, ShouldEqual, 30*time.Minute)
			So(cfg.WeightsVersion, ShouldEqual, "v4")
		})
	})
}

func TestLoadFromEnv(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("RAPPORT_CONFIG", "")
		t.Setenv("RAPPORT_ADDR", ":6060")
		t.Setenv("RAPPORT_WORKER_COUNT", "9")
		t.Setenv("RAPPORT_LOG_LEVEL", "debug")

		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.WorkerCount, ShouldEqual, 9)
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given an invalid weight table override", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := "weights:\n  mentorship: 0.5\n  network: 0.2\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		t.Setenv("RAPPORT_CONFIG", path)

		_, err := config.Load(context.Background())

		Convey("Then loading fails with an invalid-config error", func() {
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("RAPPORT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := config.Load(context.Background())

		Convey("Then loading fails with a load error", func() {
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}
