package roster_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/lineup/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRow(t *testing.T) {
	Convey("Given a well-formed grid row", t, func() {
		row := roster.Row{First: " Ada ", Last: "Lovelace", Skill: " 7.5", Defense: "1", Attendance: "1"}

		Convey("When parsing it", func() {
			p, err := roster.ParseRow(0, row)

			Convey("Then it should yield a typed defenseman", func() {
				So(err, ShouldBeNil)
				So(p.First, ShouldEqual, "Ada")
				So(p.Skill, ShouldEqual, 7.5)
				So(p.Defense, ShouldBeTrue)
				So(p.Attending, ShouldBeTrue)
				So(p.Position(), ShouldEqual, roster.Defense)
				So(p.Name(), ShouldEqual, "Ada Lovelace")
			})
		})
	})

	Convey("Given flag spellings", t, func() {
		for _, v := range []string{"1", "true", "YES", " y ", "x"} {
			So(roster.Row{Attendance: v}.Attending(), ShouldBeTrue)
		}
		for _, v := range []string{"", "0", "no", "2", "false"} {
			So(roster.Row{Attendance: v}.Attending(), ShouldBeFalse)
		}
	})

	Convey("Given rows with unusable skills", t, func() {
		cases := map[string]string{
			"":    "empty",
			"abc": "not a number",
			"NaN": "finite",
			"Inf": "finite",
			"-3":  "negative",
		}
		for value, reason := range cases {
			_, err := roster.ParseRow(4, roster.Row{First: "Bad", Skill: value})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, roster.ErrValidation), ShouldBeTrue)

			var verr *roster.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Index, ShouldEqual, 4)
			So(verr.Value, ShouldEqual, value)
			So(verr.Reason, ShouldContainSubstring, reason)
		}
	})
}

func TestParseRows(t *testing.T) {
	Convey("Given a batch with two bad records", t, func() {
		rows := []roster.Row{
			{First: "A", Skill: "3"},
			{First: "B", Last: "Bee", Skill: "abc"},
			{First: "C", Skill: "4"},
			{ID: "row-4", Skill: ""},
		}

		Convey("When parsing the batch", func() {
			players, err := roster.ParseRows(rows)

			Convey("Then no players should be returned and both records named", func() {
				So(players, ShouldBeNil)
				invalid := roster.Invalid(err)
				So(invalid, ShouldHaveLength, 2)
				So(invalid[0].Index, ShouldEqual, 1)
				So(invalid[0].Last, ShouldEqual, "Bee")
				So(invalid[1].ID, ShouldEqual, "row-4")
				So(err.Error(), ShouldContainSubstring, "2 invalid records")
				So(err.Error(), ShouldContainSubstring, "B Bee")
				So(err.Error(), ShouldContainSubstring, "#3")
			})
		})
	})

	Convey("Given a clean batch", t, func() {
		players, err := roster.ParseRows([]roster.Row{{Skill: "1"}, {Skill: "2", Attendance: "1"}})

		Convey("Then every row should be converted in order", func() {
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
			So(players[1].Skill, ShouldEqual, 2)
			So(roster.Attending(players), ShouldHaveLength, 1)
		})
	})

	Convey("Given an error unrelated to validation", t, func() {
		So(roster.Invalid(errors.New("boom")), ShouldBeNil)
		So(roster.Invalid(nil), ShouldBeNil)
	})
}

func TestAttendingRows(t *testing.T) {
	Convey("Given a mixed grid", t, func() {
		rows := []roster.Row{{First: "in", Attendance: "1"}, {First: "out", Attendance: "0"}, {First: "also", Attendance: "yes"}}

		Convey("Then only attending rows should remain, in order", func() {
			got := roster.AttendingRows(rows)
			So(got, ShouldHaveLength, 2)
			So(got[0].First, ShouldEqual, "in")
			So(got[1].First, ShouldEqual, "also")
		})
	})
}

func TestRowJSON(t *testing.T) {
	Convey("Given JSON rows with mixed cell types", t, func() {
		var rows []roster.Row
		err := json.Unmarshal([]byte(`[
			{"first":"A","last":"B","skill":7,"defense":true,"attendance":"1"},
			{"first":"C","skill":"4.5","defense":0,"attendance":null},
			{"first":"D","skill":"abc"}
		]`), &rows)

		Convey("Then every cell should be normalized to text", func() {
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0].Skill, ShouldEqual, "7")
			So(rows[0].Defense, ShouldEqual, "1")
			So(rows[1].Skill, ShouldEqual, "4.5")
			So(rows[1].Defense, ShouldEqual, "0")
			So(rows[1].Attendance, ShouldEqual, "")
			So(rows[2].Skill, ShouldEqual, "abc")
		})
	})

	Convey("Given a structured skill value", t, func() {
		var row roster.Row
		err := json.Unmarshal([]byte(`{"skill":{"value":3}}`), &row)

		Convey("Then decoding should fail", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "skill")
		})
	})
}
