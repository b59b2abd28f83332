package fuzzy_test

import (
	"errors"
	"testing"

	"github.com/okian/tipper/internal/domain/fuzzy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefuzzify(t *testing.T) {
	Convey("Given no active tip level", t, func() {
		zero := fuzzy.TipDegrees{}

		Convey("Then both methods return zero instead of dividing by zero", func() {
			So(fuzzy.Defuzzify(zero, fuzzy.MethodCentroid), ShouldEqual, 0.0)
			So(fuzzy.Defuzzify(zero, fuzzy.MethodLegacy), ShouldEqual, 0.0)
		})
	})

	Convey("Given a single active tip level", t, func() {
		Convey("Then the centroid is the region midpoint", func() {
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Cheap: 1}, fuzzy.MethodCentroid), ShouldEqual, 5.0)
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Average: 0.4}, fuzzy.MethodCentroid), ShouldEqual, 15.0)
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Generous: 1}, fuzzy.MethodCentroid), ShouldEqual, 25.0)
		})

		Convey("Then the legacy sum divides the slot total by ten", func() {
			// slots 0..9 sum to 45, 11..19 to 135, 21..29 to 225
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Cheap: 1}, fuzzy.MethodLegacy), ShouldAlmostEqual, 4.5, tolerance)
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Average: 1}, fuzzy.MethodLegacy), ShouldAlmostEqual, 13.5, tolerance)
			So(fuzzy.Defuzzify(fuzzy.TipDegrees{Generous: 1}, fuzzy.MethodLegacy), ShouldAlmostEqual, 22.5, tolerance)
		})
	})

	Convey("Given mixed activations", t, func() {
		tip := fuzzy.TipDegrees{Cheap: 0.5, Average: 0, Generous: 0.5}

		Convey("Then the centroid sits halfway between the regions", func() {
			So(fuzzy.Defuzzify(tip, fuzzy.MethodCentroid), ShouldAlmostEqual, 15.0, tolerance)
		})
	})
}

func TestParseMethod(t *testing.T) {
	Convey("Given method names", t, func() {
		Convey("Then known names parse", func() {
			m, err := fuzzy.ParseMethod("centroid")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, fuzzy.MethodCentroid)

			m, err = fuzzy.ParseMethod(" Legacy ")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, fuzzy.MethodLegacy)

			m, err = fuzzy.ParseMethod("")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, fuzzy.MethodCentroid)
		})

		Convey("Then unknown names fail with ErrUnknownMethod", func() {
			_, err := fuzzy.ParseMethod("bisector")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, fuzzy.ErrUnknownMethod), ShouldBeTrue)
		})

		Convey("Then String round-trips", func() {
			So(fuzzy.MethodCentroid.String(), ShouldEqual, "centroid")
			So(fuzzy.MethodLegacy.String(), ShouldEqual, "legacy")
			So(fuzzy.Method(7).String(), ShouldEqual, "method(7)")
		})
	})
}
