package promexport

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskosim/blocksim"
)

func TestCollectorImplementsPrometheusCollector(t *testing.T) {
	var _ prometheus.Collector = (*Collector)(nil)
}

func TestCollectReportsCurrentSnapshotValues(t *testing.T) {
	m := blocksim.NewMetrics()
	m.Read()
	m.Read()
	m.Seek(2.5)

	c := New(m)
	ch := make(chan prometheus.Metric, 32)
	c.Collect(ch)
	close(ch)

	var sawReads, sawSeekTime bool
	for metric := range ch {
		var pb dto.Metric
		require.NoError(t, metric.Write(&pb))
		desc := metric.Desc().String()
		switch {
		case strings.Contains(desc, "blocksim_disk_reads_total"):
			sawReads = true
			assert.Equal(t, 2.0, pb.GetCounter().GetValue())
		case strings.Contains(desc, "blocksim_disk_seek_time_ms_total"):
			sawSeekTime = true
			assert.Equal(t, 2.5, pb.GetCounter().GetValue())
		}
	}
	assert.True(t, sawReads)
	assert.True(t, sawSeekTime)
}
