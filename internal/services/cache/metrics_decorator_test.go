package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	store map[string]string
	err   error
}

func (c *mapCache) Set(ctx context.Context, key, value string) error {
	if c.err != nil {
		return c.err
	}
	c.store[key] = value
	return nil
}

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	v, ok := c.store[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return v, nil
}

type recordingCollector struct {
	latencies []string
	counters  [][]string
}

func (r *recordingCollector) ObserveLatency(operation string, _ time.Duration) {
	r.latencies = append(r.latencies, operation)
}

func (r *recordingCollector) IncrementCounter(metric string, labels ...string) {
	r.counters = append(r.counters, append([]string{metric}, labels...))
}

func TestMetricsDecorator_HitAndMiss(t *testing.T) {
	collector := &recordingCollector{}
	dec := NewMetricsDecorator[string](&mapCache{store: map[string]string{}}, collector)
	ctx := context.Background()

	_, err := dec.Get(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, dec.Set(ctx, "k", "v"))

	v, err := dec.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	assert.Equal(t, []string{"cache_get", "cache_set", "cache_get"}, collector.latencies)
	assert.Equal(t, [][]string{
		{"cache_get", "miss"},
		{"cache_set", "success"},
		{"cache_get", "hit"},
	}, collector.counters)
}

func TestMetricsDecorator_SetError(t *testing.T) {
	collector := &recordingCollector{}
	dec := NewMetricsDecorator[string](&mapCache{err: errors.New("redis down")}, collector)

	assert.Error(t, dec.Set(context.Background(), "k", "v"))
	assert.Equal(t, [][]string{{"cache_set", "error"}}, collector.counters)
}
