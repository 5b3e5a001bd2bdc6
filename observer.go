package shapejson

import (
	"context"
	"time"

	"github.com/hupe1980/shapejson/internal/cache"
)

// cacheObserver forwards routine cache events to the package logger and
// metrics collector.
type cacheObserver struct{}

func init() {
	cache.Default.SetObserver(cacheObserver{})
}

func (cacheObserver) Hit(cache.Key) {
	if mc := currentMetrics(); mc != nil {
		mc.RecordCacheHit()
	}
}

func (cacheObserver) Miss(cache.Key) {
	if mc := currentMetrics(); mc != nil {
		mc.RecordCacheMiss()
	}
}

func (cacheObserver) Built(k cache.Key, elapsed time.Duration, err error) {
	currentLogger().LogBuild(context.Background(), k.Type, Config(k.Config), elapsed, err)
	if mc := currentMetrics(); mc != nil {
		mc.RecordBuild(k.Type, elapsed, err)
	}
}
