package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/bidhaus/goapi/base/env"
	"github.com/bidhaus/goapi/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always
	ddRate = 1
	// buffer this many metrics before flushing to the statsd agent
	bufferMetrics = 10
)

var (
	initOnce sync.Once
	client   *statsd.Client
)

func initClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		// metrics are best effort, absence of an agent never blocks the app
		return
	}
	addr := fmt.Sprintf("%s:%d", host, 8125)
	c, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Warn("can't talk to datadog agent")
		return
	}
	client = c
}

// Metrics emits counters and timings under a fixed key prefix.
type Metrics struct {
	prefix string
	tags   []string
}

func New(prefix string, tags ...string) *Metrics {
	initOnce.Do(initClient)
	base := []string{
		"pod:" + env.PodName(),
		"env:" + env.EnvName(),
		"app:" + env.AppName(),
	}
	return &Metrics{prefix: prefix, tags: append(base, tags...)}
}

// BumpCount increments the counter for the given key.
func (m *Metrics) BumpCount(key string, val int64, tags ...string) {
	if client == nil {
		return
	}
	client.Count(m.prefix+"."+key, val, append(m.tags, tags...), ddRate)
}

// BumpTime starts a timer for the given key; call End on the returned value.
func (m *Metrics) BumpTime(key string, tags ...string) *Timer {
	return &Timer{m: m, key: key, tags: tags, start: time.Now()}
}

type Timer struct {
	m     *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *Timer) End() {
	if client == nil {
		return
	}
	elapsed := float64(time.Since(t.start).Milliseconds())
	client.TimeInMilliseconds(t.m.prefix+"."+t.key, elapsed, append(t.m.tags, t.tags...), ddRate)
}
