package service_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	service "github.com/okian/tipper/internal/app"
	"github.com/okian/tipper/internal/domain/fuzzy"
	"github.com/okian/tipper/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it uses the centroid method", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Method(), ShouldEqual, fuzzy.MethodCentroid)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(service.WithMethod(fuzzy.MethodLegacy), service.WithLogger(nil))

		Convey("Then the options are applied", func() {
			So(svc.Method(), ShouldEqual, fuzzy.MethodLegacy)
		})
	})
}

func TestService_Calculate(t *testing.T) {
	Convey("Given a service with a fixed id generator", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithIDGenerator(func() string { return "calc-1" }))

		Convey("When calculating for service 5 and food 5", func() {
			res, err := svc.Calculate(ctx, service.Request{ServiceQuality: 5, FoodQuality: 5})

			Convey("Then it should return the centroid tip with all degrees", func() {
				So(err, ShouldBeNil)
				So(res.ID, ShouldEqual, "calc-1")
				So(res.Tip, ShouldAlmostEqual, 15.0, 1e-9)
				So(res.Method, ShouldEqual, "centroid")
				So(res.Service.Good, ShouldEqual, 1.0)
				So(res.Food.Rancid, ShouldAlmostEqual, 1.0/3, 1e-9)
				So(res.Levels.Average, ShouldEqual, 1.0)
			})

			Convey("And stats should reflect it", func() {
				stats := svc.GetStats()
				So(stats["calculations"], ShouldEqual, int64(1))
				So(stats["rejected"], ShouldEqual, int64(0))
				So(stats["lastTip"], ShouldAlmostEqual, 15.0, 1e-9)
				So(stats["method"], ShouldEqual, "centroid")
			})
		})

		Convey("When the inputs sit exactly on the range limits", func() {
			_, errLow := svc.Calculate(ctx, service.Request{ServiceQuality: 0, FoodQuality: 0})
			_, errHigh := svc.Calculate(ctx, service.Request{ServiceQuality: 10, FoodQuality: 10})

			Convey("Then they are accepted", func() {
				So(errLow, ShouldBeNil)
				So(errHigh, ShouldBeNil)
			})
		})

		Convey("When service quality is out of range", func() {
			_, err := svc.Calculate(ctx, service.Request{ServiceQuality: 11, FoodQuality: 5})

			Convey("Then it should fail with ErrOutOfRange naming the field", func() {
				So(errors.Is(err, service.ErrOutOfRange), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, service.FieldService)
				So(svc.GetStats()["rejected"], ShouldEqual, int64(1))
			})
		})

		Convey("When food quality is negative", func() {
			_, err := svc.Calculate(ctx, service.Request{ServiceQuality: 5, FoodQuality: -0.1})

			Convey("Then it should fail naming the food field", func() {
				So(errors.Is(err, service.ErrOutOfRange), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, service.FieldFood)
			})
		})

		Convey("When an input is not a finite number", func() {
			_, errNaN := svc.Calculate(ctx, service.Request{ServiceQuality: math.NaN(), FoodQuality: 5})
			_, errInf := svc.Calculate(ctx, service.Request{ServiceQuality: 5, FoodQuality: math.Inf(1)})

			Convey("Then it should be rejected", func() {
				So(errors.Is(errNaN, service.ErrOutOfRange), ShouldBeTrue)
				So(errors.Is(errInf, service.ErrOutOfRange), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service using the legacy formula", t, func() {
		svc := service.New(service.WithMethod(fuzzy.MethodLegacy))

		Convey("Then service 5 and food 5 give 13.5", func() {
			res, err := svc.Calculate(context.Background(), service.Request{ServiceQuality: 5, FoodQuality: 5})
			So(err, ShouldBeNil)
			So(res.Tip, ShouldAlmostEqual, 13.5, 1e-9)
			So(res.Method, ShouldEqual, "legacy")
		})
	})

	Convey("Given concurrent callers", t, func() {
		svc := service.New()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = svc.Calculate(context.Background(), service.Request{ServiceQuality: float64(i % 11), FoodQuality: 7})
			}(i)
		}
		wg.Wait()

		Convey("Then every calculation is counted", func() {
			So(svc.GetStats()["calculations"], ShouldEqual, int64(50))
		})
	})
}

func TestService_Logging(t *testing.T) {
	Convey("Given a service with a debug logger", t, func() {
		var buf bytes.Buffer
		So(logger.InitWithWriter(&buf, logger.FormatText), ShouldBeNil)
		So(logger.SetLevelString("debug"), ShouldBeNil)
		defer func() { _ = logger.SetLevelString("info") }()
		svc := service.New(service.WithLogger(logger.Get()))

		Convey("When a tip is calculated", func() {
			_, err := svc.Calculate(context.Background(), service.Request{ServiceQuality: 8, FoodQuality: 8})

			Convey("Then the evaluation is logged", func() {
				So(err, ShouldBeNil)
				So(strings.Contains(buf.String(), "tip calculated"), ShouldBeTrue)
			})
		})
	})
}

func TestService_Rules(t *testing.T) {
	Convey("Given a service", t, func() {
		Convey("Then it exposes the rule table", func() {
			So(service.New().Rules(), ShouldResemble, fuzzy.Rules())
		})
	})
}
