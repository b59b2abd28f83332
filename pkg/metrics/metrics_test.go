package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "tipper")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordCalculation("centroid", 15, 0.01)

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_calculations_total")
				for _, f := range families {
					if f.GetName() == "test_unit_calculations_total" {
						So(f.GetMetric()[0].GetLabel(), ShouldNotBeEmpty)
					}
				}
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording calculations", func() {
			m.RecordCalculation("centroid", 15, 0.002)
			m.RecordCalculation("centroid", 20, 0.003)
			m.RecordCalculation("legacy", 13.5, 0.002)

			Convey("Then counters are split by method", func() {
				So(testutil.ToFloat64(m.calculations.WithLabelValues("centroid")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.calculations.WithLabelValues("legacy")), ShouldEqual, 1.0)
			})

			Convey("And the last tip gauge holds the latest value", func() {
				So(testutil.ToFloat64(m.lastTip), ShouldEqual, 13.5)
			})
		})

		Convey("When recording rejected inputs", func() {
			m.RecordRejectedInput("service_quality")
			m.RecordRejectedInput("service_quality")

			Convey("Then they are counted per field", func() {
				So(testutil.ToFloat64(m.rejectedInputs.WithLabelValues("service_quality")), ShouldEqual, 2.0)
			})
		})

		Convey("When recording HTTP traffic and errors", func() {
			So(func() {
				m.RecordHTTPRequest("tip", "POST", "200", 1.5)
				m.RecordError("http", "tip", "POST", "client_error", "medium", 0.7)
				m.RecordError("cli", "", "", "client_error", "medium", 0.1)
				m.RecordTipLevels(0.3, 1, 0.3)
				m.UpdateSystem(1<<20, 12, 0.4)
			}, ShouldNotPanic)

			Convey("Then the request counter moves", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("tip", "POST", "200")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.errorRateByType.WithLabelValues("client_error", "medium")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12.0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the package level helpers", t, func() {
		Convey("Then they record on the shared registry without panicking", func() {
			So(func() {
				RecordCalculation("centroid", 15, 0.001)
				RecordTipLevels(0.1, 0.2, 0.3)
				RecordRejectedInput("food_quality")
				RecordHTTPRequest("rules", "GET", "200", 0.5)
				RecordError("http", "tip", "GET", "client_error", "medium", 0.5)
				UpdateSystem(1024, 4, 0)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
