package metrics

import (
	"fmt"
	"time"

	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/rcrowley/go-metrics"
)

const (
	CountFunc = "Count()"
	Rate1Func = "Rate1()"
	MeanFunc  = "Mean()"
)

// Condition is an alarm rule. It is triggered when the metric value reaches AlarmValue
type Condition struct {
	AlarmReason string
	MetricsType string
	AlarmValue  float64
}

// AlarmRuleTable maps metric names to their alarm rule
var AlarmRuleTable = map[string]*Condition{
	// tx
	FailedTx_meterName: {
		AlarmReason: "more than 100 transactions failed",
		MetricsType: CountFunc,
		AlarmValue:  100,
	},
	VerifyFailedTx_meterName: {
		AlarmReason: "the rate of transactions with bad signature is more than 1/s",
		MetricsType: Rate1Func,
		AlarmValue:  1,
	},
	// chain
	BlockProcess_timerName: {
		AlarmReason: "processing a block takes more than 1s on average",
		MetricsType: MeanFunc,
		AlarmValue:  float64(time.Second),
	},
	// levelDB
	LevelDb_miss_meterName: {
		AlarmReason: "more than 10 leveldb reads failed",
		MetricsType: CountFunc,
		AlarmValue:  10,
	},
}

// Modules lists the metric name prefixes used by the ledger
var Modules = []string{txModule, chainModule, leveldbModule}

func metricValue(metric interface{}, metricsType string) (float64, bool) {
	switch m := metric.(type) {
	case metrics.Counter:
		if metricsType == CountFunc {
			return float64(m.Count()), true
		}
	case metrics.Meter:
		switch metricsType {
		case CountFunc:
			return float64(m.Count()), true
		case Rate1Func:
			return m.Rate1(), true
		case MeanFunc:
			return m.RateMean(), true
		}
	case metrics.Timer:
		switch metricsType {
		case CountFunc:
			return float64(m.Count()), true
		case Rate1Func:
			return m.Rate1(), true
		case MeanFunc:
			return m.Mean(), true
		}
	}
	return 0, false
}

// CheckAlarms evaluates the rules against the registry and returns the triggered alarms
func CheckAlarms(r metrics.Registry, rules map[string]*Condition) []string {
	alarms := make([]string, 0)
	for name, rule := range rules {
		metric := r.Get(name)
		if metric == nil {
			continue
		}
		value, ok := metricValue(metric, rule.MetricsType)
		if !ok {
			log.Warn("Unsupported alarm rule", "name", name, "type", rule.MetricsType)
			continue
		}
		if value >= rule.AlarmValue {
			alarm := fmt.Sprintf("%s: %s (%s = %.2f)", name, rule.AlarmReason, rule.MetricsType, value)
			log.Warn("Metrics alarm", "name", name, "reason", rule.AlarmReason, "value", value)
			alarms = append(alarms, alarm)
		}
	}
	return alarms
}
