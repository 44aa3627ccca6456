package smoke

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/lineup/internal/adapters/http/api"
	service "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := SetupLogging(io.Discard, false); err != nil {
		panic(err)
	}
}

func newTestServer() *httptest.Server {
	svc := service.New(service.WithLogger(logger.Get()))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, logger.Get()).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL:    url,
		Players:    30,
		Attendance: DefaultAttendance,
		Defense:    DefaultDefense,
		Timeout:    time.Second,
		Seed:       42,
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded config", t, func() {
		ctx := context.Background()

		Convey("The same seed yields the same grid", func() {
			a := Generate(ctx, testConfig(""), "run")
			b := Generate(ctx, testConfig(""), "run")
			So(a, ShouldResemble, b)
			So(a, ShouldHaveLength, 30)
		})

		Convey("Every generated skill parses", func() {
			players, err := roster.ParseRows(Generate(ctx, testConfig(""), "run"))
			So(err, ShouldBeNil)
			for _, p := range players {
				So(p.Skill, ShouldBeBetweenOrEqual, skillMin, skillMin+skillSpan)
			}
		})

		Convey("Ratios of zero and one are honored", func() {
			cfg := testConfig("")
			cfg.Attendance = 1
			cfg.Defense = 0
			rows := Generate(ctx, cfg, "run")
			So(roster.AttendingRows(rows), ShouldHaveLength, len(rows))
			for _, r := range rows {
				So(r.Defense, ShouldEqual, "0")
			}
		})

		Convey("A zero seed is replaced and recorded", func() {
			cfg := testConfig("")
			cfg.Seed = 0
			Generate(ctx, cfg, "run")
			So(cfg.Seed, ShouldNotEqual, 0)
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a grid of three attending rows", t, func() {
		rows := []roster.Row{
			{First: "A", Last: "x", Skill: "5", Attendance: "1"},
			{First: "B", Last: "x", Skill: "3", Attendance: "1"},
			{First: "C", Last: "x", Skill: "2", Attendance: "1"},
			{First: "D", Last: "x", Skill: "9", Attendance: "0"},
		}
		good := Assignment{
			Teams: []Team{
				{Name: "Red", Skill: 5, Players: []Player{{First: "A", Last: "x", Skill: 5}}},
				{Name: "White", Skill: 5, Players: []Player{{First: "B", Last: "x", Skill: 3}, {First: "C", Last: "x", Skill: 2}}},
			},
		}

		Convey("A consistent assignment passes", func() {
			So(Verify(rows, good), ShouldBeNil)
		})

		Convey("A missing player fails", func() {
			bad := good
			bad.Teams = []Team{good.Teams[0], {Name: "White", Skill: 3, Players: good.Teams[1].Players[:1]}}
			bad.Gap = 2
			So(errors.Is(Verify(rows, bad), ErrVerification), ShouldBeTrue)
		})

		Convey("An absent player fails", func() {
			bad := good
			bad.Teams = []Team{
				{Name: "Red", Skill: 14, Players: []Player{{First: "A", Last: "x", Skill: 5}, {First: "D", Last: "x", Skill: 9}}},
				good.Teams[1],
			}
			So(Verify(rows, bad), ShouldNotBeNil)
		})

		Convey("A wrong gap fails", func() {
			bad := good
			bad.Gap = 1
			So(Verify(rows, bad), ShouldNotBeNil)
		})

		Convey("A wrong team sum fails", func() {
			bad := good
			bad.Teams = []Team{{Name: "Red", Skill: 6, Players: good.Teams[0].Players}, good.Teams[1]}
			So(Verify(rows, bad), ShouldNotBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running lineup server", t, func() {
		srv := newTestServer()
		defer srv.Close()

		Convey("A smoke run passes verification", func() {
			stats, err := Run(context.Background(), testConfig(srv.URL))
			So(err, ShouldBeNil)
			So(stats.Rows, ShouldEqual, 30)
			So(stats.Seed, ShouldEqual, 42)
			So(stats.RunID, ShouldNotBeEmpty)
		})

		Convey("An empty roster still yields two teams", func() {
			cfg := testConfig(srv.URL)
			cfg.Players = 0
			stats, err := Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(stats.Attending, ShouldEqual, 0)
			So(stats.Gap, ShouldEqual, 0)
		})

		Convey("An invalid config fails before any request", func() {
			cfg := testConfig(srv.URL)
			cfg.Attendance = 2
			_, err := Run(context.Background(), cfg)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given no server", t, func() {
		_, err := Run(context.Background(), testConfig("http://127.0.0.1:1"))
		So(err, ShouldNotBeNil)
	})
}
