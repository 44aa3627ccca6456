package metrics

import (
	"strings"
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

			Convey("Then collectors should be registered under the lineup namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.rosterRows.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "lineup_roster_rows" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.rosterRows.Set(1)

			Convey("Then names and labels should follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_sub_rows")
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto should panic on the duplicate", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording allocation outcomes", func() {
			before := testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeBalanced))
			beforeEmpty := testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeEmpty))
			beforeResidual := testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeResidual))

			RecordAllocation(10, 1, 1, 1.5, true)
			RecordAllocation(0, 0, 0, 0, true)
			RecordAllocation(2, 2, 0, 4, false)

			Convey("Then each outcome should be counted once", func() {
				So(testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeBalanced)), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeEmpty)), ShouldEqual, beforeEmpty+1)
				So(testutil.ToFloat64(globalManager.allocations.WithLabelValues(OutcomeResidual)), ShouldEqual, beforeResidual+1)
			})
		})

		Convey("When recording a validation failure", func() {
			before := testutil.ToFloat64(globalManager.invalidRecordsTotal)
			RecordValidationFailure(3)

			Convey("Then the named records should be added up", func() {
				So(testutil.ToFloat64(globalManager.invalidRecordsTotal), ShouldEqual, before+3)
			})
		})

		Convey("When updating roster rows", func() {
			UpdateRosterRows(12)

			Convey("Then the gauge should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.rosterRows), ShouldEqual, 12)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordHTTPRequest("teams", "POST", "200")
					RecordHTTPRequestDuration("teams", "POST", "200", 3.0)
					RecordErrorByComponent("allocator", "validation")
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("allocate", "POST", "client_error")
					RecordErrorLatency("http", "client_error", 1.0)
					RecordAllocationLatency(0.2)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(8)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
