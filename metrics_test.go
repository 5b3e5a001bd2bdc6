package shapejson

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordBuild(nil, 4*time.Millisecond, nil)
	m.RecordBuild(nil, 2*time.Millisecond, errors.New("boom"))
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordEncode(100, time.Microsecond, nil)
	m.RecordDecode(50, 3*time.Microsecond, errors.New("bad"))

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.BuildAvgNanos)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(100), stats.EncodeBytes)
	assert.Equal(t, int64(0), stats.EncodeErrors)
	assert.Equal(t, int64(1), stats.DecodeErrors)
	assert.Equal(t, int64(3000), stats.DecodeAvgNanos)
}

func TestMetricsCollectorWiring(t *testing.T) {
	type metered struct {
		N int
	}
	m := &BasicMetricsCollector{}
	SetMetricsCollector(m)
	t.Cleanup(func() { SetMetricsCollector(nil) })

	data, err := Marshal(metered{N: 1}, Default)
	require.NoError(t, err)
	_, err = Marshal(metered{N: 2}, Default)
	require.NoError(t, err)

	var back metered
	require.NoError(t, Unmarshal(data, &back, Default))

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(2), stats.CacheHits)
	assert.Equal(t, int64(2), stats.EncodeCount)
	assert.Equal(t, int64(2*len(data)), stats.EncodeBytes)
	assert.Equal(t, int64(1), stats.DecodeCount)
	assert.Equal(t, int64(len(data)), stats.DecodeBytes)

	SetMetricsCollector(nil)
	_, err = Marshal(metered{N: 3}, Default)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.GetStats().EncodeCount)
}

var _ MetricsCollector = NoopMetricsCollector{}
