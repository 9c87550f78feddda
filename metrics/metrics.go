// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	wlog "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/prometheus/client_golang/prometheus"
	gometrics "github.com/rcrowley/go-metrics"
)

var (
	log = wlog.New("module", "wager metrics")
)

// Namespace of every collector
var Namespace = "wager"

// Collectors prometheus collectors of the executor
type Collectors struct {
	TxTotal          *prometheus.CounterVec
	InstructionTotal *prometheus.CounterVec
}

// Executor the collectors used by the executor
var Executor = newCollectors(Namespace)

func newCollectors(ns string) *Collectors {
	return &Collectors{
		TxTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "executor",
			Name:      "tx_total",
			Help:      "executed transactions by result.",
		}, []string{"result"}),
		InstructionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "executor",
			Name:      "instruction_total",
			Help:      "processed instructions by program and result.",
		}, []string{"program", "result"}),
	}
}

// Metrics implement Collector
func (c *Collectors) Metrics() []prometheus.Collector {
	return PrometheusCollectorsFromFields(c)
}

// Collector a component exporting prometheus collectors
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields collect every exported collector field of struct i
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}

// Register register the executor collectors, already registered collectors are kept
func Register(reg prometheus.Registerer) error {
	for _, c := range Executor.Metrics() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// StartMetrics 根据配置文件相关参数启动
func StartMetrics(cfg *types.Metrics, reg prometheus.Registerer) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	if err := Register(reg); err != nil {
		log.Error("StartMetrics", "err", err)
		return
	}
	log.Info("StartMetrics", "namespace", Namespace)
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}

// ObserveTx count one transaction
func ObserveTx(ok bool) {
	Executor.TxTotal.WithLabelValues(result(ok)).Inc()
}

// ObserveInstruction count one instruction of program
func ObserveInstruction(program string, ok bool) {
	if program == "" {
		program = "unknown"
	}
	Executor.InstructionTotal.WithLabelValues(program, result(ok)).Inc()
}

// Dump go-metrics counters and timers of r as sorted text lines
func Dump(r gometrics.Registry) []string {
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	var lines []string
	r.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case gometrics.Counter:
			lines = append(lines, fmt.Sprintf("%s count=%d", name, m.Count()))
		case gometrics.Timer:
			t := m.Snapshot()
			lines = append(lines, fmt.Sprintf("%s count=%d mean=%.0fns max=%dns", name, t.Count(), t.Mean(), t.Max()))
		case gometrics.Gauge:
			lines = append(lines, fmt.Sprintf("%s value=%d", name, m.Value()))
		}
	})
	sort.Strings(lines)
	return lines
}

// Gather counters of the wager collectors registered on g as sorted text lines
func Gather(g prometheus.Gatherer) ([]string, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), Namespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %v", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	return lines, nil
}
