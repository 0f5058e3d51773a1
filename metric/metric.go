// Copyright (c) tkc17.

package metric

import (
	"net/http"
	"time"

	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var instance *Metrics

func init() {
	instance = newMetrics()
}

// GetInstance returns the singleton metrics.
func GetInstance() *Metrics {
	return instance
}

// Metrics struct contains all the metrics.
type Metrics struct {
	uptimeCounter       *prometheus.CounterVec
	sampleCounter       *prometheus.CounterVec
	sampleErrorCounter  *prometheus.CounterVec
	disconnectedCounter *prometheus.CounterVec
	connectedGauge      *prometheus.GaugeVec
	stationCountGauge   *prometheus.GaugeVec
	stationGauges       map[string]*prometheus.GaugeVec
	requestCounter      *prometheus.CounterVec
	responseHistogram   *prometheus.HistogramVec
}

func newMetrics() *Metrics {
	metrics := &Metrics{
		// Start of all metrics.
		uptimeCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iwmon_uptime_total",
				Help: "Total number of uptime heartbeats.",
			}, []string{"uuid", "iface"}),
		sampleCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iwmon_samples_total",
				Help: "Total number of station dump samples.",
			}, []string{"uuid", "iface"}),
		sampleErrorCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iwmon_sample_errors_total",
				Help: "Total number of failed station dumps.",
			}, []string{"uuid", "iface"}),
		disconnectedCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iwmon_disconnected_samples_total",
				Help: "Total number of samples with no associated station.",
			}, []string{"uuid", "iface"}),
		connectedGauge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "iwmon_connected",
				Help: "Whether at least one station is associated.",
			}, []string{"uuid", "iface"}),
		stationCountGauge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "iwmon_stations",
				Help: "Number of stations in the latest sample.",
			}, []string{"uuid", "iface"}),
		stationGauges: map[string]*prometheus.GaugeVec{},
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iwmon_http_requests_total",
				Help: "Total number of HTTP API requests.",
			}, []string{"uuid", "iface", "method", "path", "response_code"}),
		responseHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iwmon_response_seconds",
			Help:    "Histogram of response time of HTTP API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"uuid", "iface", "method", "path"}),
		// End of all metrics.
	}
	for name, help := range map[string]string{
		"signal_dbm":        "Station signal strength.",
		"signal_avg_dbm":    "Station average signal strength.",
		"tx_bitrate_mbps":   "Station transmit bitrate.",
		"rx_bitrate_mbps":   "Station receive bitrate.",
		"connected_seconds": "Seconds since the station associated.",
		"inactive_ms":       "Milliseconds since the last station activity.",
		"rx_bytes":          "Bytes received from the station.",
		"tx_bytes":          "Bytes sent to the station.",
		"tx_retries":        "Transmit retries for the station.",
		"tx_failed":         "Failed transmissions for the station.",
	} {
		metrics.stationGauges[name] = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "iwmon_station_" + name,
				Help: help,
			}, []string{"uuid", "iface", "bssid"})
	}
	// Register this collector.
	prometheus.MustRegister(metrics)
	return metrics
}

// HTTPHandler returns the HTTP handler.
func (metrics *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}

// PrepopulateMetrics initializes the counters to be reported as zero
// before the first sample.
func (metrics *Metrics) PrepopulateMetrics() {
	labelValues := metrics.agentLabelValues()
	metrics.uptimeCounter.GetMetricWithLabelValues(labelValues...)
	metrics.sampleCounter.GetMetricWithLabelValues(labelValues...)
	metrics.sampleErrorCounter.GetMetricWithLabelValues(labelValues...)
	metrics.disconnectedCounter.GetMetricWithLabelValues(labelValues...)
}

func (metrics *Metrics) agentLabelValues() []string {
	config := util.CurrentConfig()
	return []string{config.String(util.AgentIdKey), config.String(util.MonitorIfaceKey)}
}

// heartbeat publishes heartbeat.
func (metrics *Metrics) heartbeat() {
	metrics.incrementCounter(metrics.uptimeCounter)
}

// Describe implements the method in prometheus Collector.
func (metrics *Metrics) Describe(ch chan<- *prometheus.Desc) {
	metrics.uptimeCounter.Describe(ch)
	metrics.sampleCounter.Describe(ch)
	metrics.sampleErrorCounter.Describe(ch)
	metrics.disconnectedCounter.Describe(ch)
	metrics.connectedGauge.Describe(ch)
	metrics.stationCountGauge.Describe(ch)
	for _, gauge := range metrics.stationGauges {
		gauge.Describe(ch)
	}
	metrics.requestCounter.Describe(ch)
	metrics.responseHistogram.Describe(ch)
}

// Collect implements the method in prometheus Collector.
func (metrics *Metrics) Collect(ch chan<- prometheus.Metric) {
	metrics.heartbeat()
	metrics.uptimeCounter.Collect(ch)
	metrics.sampleCounter.Collect(ch)
	metrics.sampleErrorCounter.Collect(ch)
	metrics.disconnectedCounter.Collect(ch)
	metrics.connectedGauge.Collect(ch)
	metrics.stationCountGauge.Collect(ch)
	for _, gauge := range metrics.stationGauges {
		gauge.Collect(ch)
	}
	metrics.requestCounter.Collect(ch)
	metrics.responseHistogram.Collect(ch)
}

// incrementCounter increments the given counter.
func (metrics *Metrics) incrementCounter(
	counter *prometheus.CounterVec,
	labelValues ...string,
) {
	lVals := metrics.agentLabelValues()
	lVals = append(lVals, labelValues...)
	counter.WithLabelValues(lVals...).Inc()
}

// observeHistogram updates the given histogram.
func (metrics *Metrics) observeHistogram(
	histogram *prometheus.HistogramVec,
	value float64,
	labelValues ...string,
) {
	lVals := metrics.agentLabelValues()
	lVals = append(lVals, labelValues...)
	histogram.WithLabelValues(lVals...).Observe(value)
}

// PublishSampleStats publishes the gauges and counters for one sample.
// The station gauges are reset first so stations absent from this
// sample are no longer reported.
func (metrics *Metrics) PublishSampleStats(sample *model.Sample) {
	metrics.incrementCounter(metrics.sampleCounter)
	if !sample.Connected {
		metrics.incrementCounter(metrics.disconnectedCounter)
	}
	labelValues := metrics.agentLabelValues()
	metrics.connectedGauge.WithLabelValues(labelValues...).Set(boolValue(sample.Connected))
	metrics.stationCountGauge.WithLabelValues(labelValues...).Set(float64(len(sample.Stations)))
	for _, gauge := range metrics.stationGauges {
		gauge.Reset()
	}
	for _, station := range sample.Stations {
		stationValues := append([]string{}, labelValues...)
		stationValues = append(stationValues, station.MAC)
		metrics.setStationGauge("signal_dbm", stationValues, station.SignalDBM)
		metrics.setStationGauge("signal_avg_dbm", stationValues, station.SignalAvgDBM)
		metrics.setStationGauge("tx_bitrate_mbps", stationValues, station.TxBitrateMbps)
		metrics.setStationGauge("rx_bitrate_mbps", stationValues, station.RxBitrateMbps)
		metrics.setStationGauge("connected_seconds", stationValues, station.ConnectedSec)
		metrics.setStationNumeric("inactive_ms", stationValues, station, "inactive time")
		metrics.setStationNumeric("rx_bytes", stationValues, station, "rx bytes")
		metrics.setStationNumeric("tx_bytes", stationValues, station, "tx bytes")
		metrics.setStationNumeric("tx_retries", stationValues, station, "tx retries")
		metrics.setStationNumeric("tx_failed", stationValues, station, "tx failed")
	}
}

// PublishSampleError counts one failed station dump.
func (metrics *Metrics) PublishSampleError() {
	metrics.incrementCounter(metrics.sampleErrorCounter)
}

// PublishServerRequestStats publishes HTTP server related metrics.
func (metrics *Metrics) PublishServerRequestStats(
	elapsed time.Duration,
	method, path, responseCode string,
) {
	metrics.incrementCounter(metrics.requestCounter, method, path, responseCode)
	metrics.observeHistogram(metrics.responseHistogram, elapsed.Seconds(), method, path)
}

func (metrics *Metrics) setStationGauge(name string, labelValues []string, value *float64) {
	if value == nil {
		return
	}
	metrics.stationGauges[name].WithLabelValues(labelValues...).Set(*value)
}

func (metrics *Metrics) setStationNumeric(
	name string,
	labelValues []string,
	station model.StationInfo,
	key string,
) {
	if value, ok := station.Numeric(key); ok {
		metrics.stationGauges[name].WithLabelValues(labelValues...).Set(value)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
