// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/33cn/wager/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	okBefore := testutil.ToFloat64(Executor.TxTotal.WithLabelValues("ok"))
	failBefore := testutil.ToFloat64(Executor.TxTotal.WithLabelValues("fail"))
	ObserveTx(true)
	ObserveTx(false)
	ObserveTx(false)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(Executor.TxTotal.WithLabelValues("ok")))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(Executor.TxTotal.WithLabelValues("fail")))

	before := testutil.ToFloat64(Executor.InstructionTotal.WithLabelValues("unknown", "fail"))
	ObserveInstruction("", false)
	assert.Equal(t, before+1, testutil.ToFloat64(Executor.InstructionTotal.WithLabelValues("unknown", "fail")))
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.Nil(t, Register(reg))
	require.Nil(t, Register(reg))
	assert.Len(t, Executor.Metrics(), 2)

	StartMetrics(&types.Metrics{EnableMetrics: true}, prometheus.NewRegistry())
	StartMetrics(nil, reg)
}

func TestDump(t *testing.T) {
	r := gometrics.NewRegistry()
	c := gometrics.NewRegisteredCounter("b/counter", r)
	c.Inc(3)
	tm := gometrics.NewRegisteredTimer("a/timer", r)
	tm.Update(time.Millisecond)
	lines := Dump(r)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "a/timer count=1")
	assert.Equal(t, "b/counter count=3", lines[1])
}

func TestGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.Nil(t, Register(reg))
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "other_total"})
	reg.MustRegister(other)
	other.Inc()

	ObserveInstruction("gather.test", true)
	lines, err := Gather(reg)
	require.Nil(t, err)
	assert.Contains(t, lines, `wager_executor_instruction_total{program="gather.test",result="ok"} 1`)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "wager_executor_"), line)
	}

	_, err = Gather(prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return nil, errors.New("gather failed")
	}))
	assert.NotNil(t, err)
}
