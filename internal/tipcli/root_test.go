package tipcli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	service "github.com/okian/tipper/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

// execute runs the command tree with args and returns stdout.
func execute(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	Convey("Given the tipcalc command", t, func() {
		Convey("When called with service 5 and food 5", func() {
			out, err := execute("--service", "5", "--food", "5", "--plain")

			Convey("Then it prints the centroid tip", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, "Calculated Tip: 15.00\n")
			})
		})

		Convey("When the legacy method is selected", func() {
			out, err := execute("--service", "5", "--food", "5", "--method", "legacy", "--plain")

			Convey("Then it prints the legacy tip", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Calculated Tip: 13.50")
			})
		})

		Convey("When --explain is set", func() {
			out, err := execute("--service", "5", "--food", "5", "--explain", "--plain")

			Convey("Then every degree map is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "good=1.000")
				So(out, ShouldContainSubstring, "rancid=0.333 delicious=0.333")
				So(out, ShouldContainSubstring, "cheap=0.333 average=1.000 generous=0.333")
				So(out, ShouldContainSubstring, "centroid")
			})
		})

		Convey("When an input is out of range", func() {
			out, err := execute("--service", "12", "--food", "5", "--plain")

			Convey("Then it shows an input error and fails", func() {
				So(errors.Is(err, ErrInputRejected), ShouldBeTrue)
				So(errors.Is(err, service.ErrOutOfRange), ShouldBeTrue)
				So(out, ShouldContainSubstring, "Input Error: Values must be between 0 and 10.")
			})
		})

		Convey("When the output is styled", func() {
			out, err := execute("--service", "-1", "--food", "5")

			Convey("Then the error is still readable", func() {
				So(err, ShouldNotBeNil)
				So(out, ShouldContainSubstring, "Input Error")
				So(out, ShouldContainSubstring, "Values must be between 0 and 10.")
			})
		})

		Convey("When a required flag is missing", func() {
			_, err := execute("--service", "5")

			Convey("Then cobra rejects the call", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "food")
			})
		})

		Convey("When the method is unknown", func() {
			_, err := execute("--service", "5", "--food", "5", "--method", "bisector")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown defuzzification method")
			})
		})
	})
}

func TestRulesCommand(t *testing.T) {
	Convey("Given the rules subcommand", t, func() {
		out, err := execute("rules", "--plain")

		Convey("Then it prints one line per rule", func() {
			So(err, ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, "IF service.poor OR food.rancid THEN cheap")
			So(lines[1], ShouldEqual, "IF service.good THEN average")
			So(lines[2], ShouldEqual, "IF service.excellent OR food.delicious THEN generous")
		})
	})
}

func TestSweepCommand(t *testing.T) {
	Convey("Given the sweep subcommand", t, func() {
		Convey("When sweeping service from 2 to 8 at food 5", func() {
			out, err := execute("sweep", "--from", "2", "--to", "8", "--food", "5", "--plain")

			Convey("Then it prints a header and seven rows", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines, ShouldHaveLength, 8)
				So(lines[0], ShouldEqual, "service tip")
				So(lines[1], ShouldEqual, "   2.00 10.46")
				So(lines[4], ShouldEqual, "   5.00 15.00")
				So(lines[7], ShouldEqual, "   8.00 19.54")
			})
		})

		Convey("When the step is not positive", func() {
			_, err := execute("sweep", "--step", "0")

			Convey("Then it fails with ErrInvalidSweep", func() {
				So(errors.Is(err, ErrInvalidSweep), ShouldBeTrue)
			})
		})

		Convey("When a bound is not a number", func() {
			for _, args := range [][]string{
				{"sweep", "--from", "NaN", "--to", "5", "--plain"},
				{"sweep", "--from", "0", "--to", "NaN", "--plain"},
				{"sweep", "--step", "NaN", "--plain"},
				{"sweep", "--to", "+Inf", "--plain"},
			} {
				out, err := execute(args...)
				So(errors.Is(err, ErrInvalidSweep), ShouldBeTrue)
				So(out, ShouldBeEmpty)
			}
		})

		Convey("When the step would print too many rows", func() {
			for _, step := range []string{"1e-300", "1e-9", "0.0009"} {
				out, err := execute("sweep", "--from", "0", "--to", "10", "--step", step, "--plain")
				So(errors.Is(err, ErrInvalidSweep), ShouldBeTrue)
				So(out, ShouldBeEmpty)
			}
		})

		Convey("When the step is just within the row limit", func() {
			// 9999 steps of 2^-10 land exactly on 9.7646484375.
			out, err := execute("sweep", "--from", "0", "--to", "9.7646484375", "--step", "0.0009765625", "--plain")

			Convey("Then every row is printed", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines, ShouldHaveLength, maxSweepRows+1)
			})
		})

		Convey("When the range is reversed", func() {
			_, err := execute("sweep", "--from", "8", "--to", "2")

			Convey("Then it fails with ErrInvalidSweep", func() {
				So(errors.Is(err, ErrInvalidSweep), ShouldBeTrue)
			})
		})

		Convey("When the range leaves 0-10", func() {
			_, err := execute("sweep", "--from", "9", "--to", "11")

			Convey("Then it fails on the first invalid score", func() {
				So(errors.Is(err, service.ErrOutOfRange), ShouldBeTrue)
			})
		})
	})
}
