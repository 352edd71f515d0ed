// Package metrics provides the ledger metrics collection.
package metrics

import (
	"os"
	"strings"

	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/rcrowley/go-metrics"
)

// MetricsEnabledFlag is the CLI flag name to use to enable metrics collections.
var MetricsEnabledFlag = "metrics"

// Enabled is the flag specifying if metrics are enable or not.
var Enabled = false

// Init enables or disables the metrics system. Since we need this to run before
// any other code gets to create meters and timers, we'll actually do an ugly hack
// and peek into the command line args for the metrics flag.
func init() {
	for _, arg := range os.Args {
		if strings.TrimLeft(arg, "-") == MetricsEnabledFlag {
			log.Info("Enabling metrics collection")
			Enabled = true
		}
	}
}

func NewGauge(name string) metrics.Gauge {
	if !Enabled {
		return new(metrics.NilGauge)
	}
	return metrics.GetOrRegisterGauge(name, metrics.DefaultRegistry)
}

// NewCounter create a new metrics Counter, either a real one of a NOP stub depending
// on the metrics flag.
func NewCounter(name string) metrics.Counter {
	if !Enabled {
		return new(metrics.NilCounter)
	}
	return metrics.GetOrRegisterCounter(name, metrics.DefaultRegistry)
}

// NewMeter create a new metrics Meter, either a real one of a NOP stub depending
// on the metrics flag.
func NewMeter(name string) metrics.Meter {
	if !Enabled {
		return new(metrics.NilMeter)
	}
	return metrics.GetOrRegisterMeter(name, metrics.DefaultRegistry)
}

// NewTimer create a new metrics Timer, either a real one of a NOP stub depending
// on the metrics flag.
func NewTimer(name string) metrics.Timer {
	if !Enabled {
		return new(metrics.NilTimer)
	}
	return metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
}

// LogMetrics prints every metric in the registry
func LogMetrics(r metrics.Registry) {
	r.Each(func(name string, i interface{}) {
		switch metric := i.(type) {
		case metrics.Gauge:
			log.Info("gauge", "name", name, "value", metric.Value())
		case metrics.Counter:
			log.Info("counter", "name", name, "count", metric.Count())
		case metrics.Meter:
			m := metric.Snapshot()
			log.Info("meter", "name", name, "count", m.Count(), "mean rate", m.RateMean())
		case metrics.Timer:
			t := metric.Snapshot()
			ps := t.Percentiles([]float64{0.5, 0.95, 0.99})
			log.Info("timer", "name", name, "count", t.Count(), "min", t.Min(), "max", t.Max(), "mean", t.Mean(),
				"median", ps[0], "95%", ps[1], "99%", ps[2])
		}
	})
}

// GetModuleMetrics returns the metrics whose name starts with moduleName
func GetModuleMetrics(r metrics.Registry, moduleName string) map[string]interface{} {
	m := make(map[string]interface{})
	r.Each(func(name string, i interface{}) {
		if strings.HasPrefix(name, moduleName) {
			m[name] = i
		}
	})
	return m
}
