package normalize_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/normalize"
)

func TestNormalizeIsTotal(t *testing.T) {
	Convey("Given a normalizer with default tables", t, func() {
		n := normalize.New(nil)

		Convey("When normalizing an entirely empty profile", func() {
			got := n.Normalize(model.RawProfile{})

			Convey("Then every field has its documented default", func() {
				So(got.Skills, ShouldBeEmpty)
				So(got.Industry, ShouldEqual, "Other")
				So(got.Location, ShouldEqual, "Unknown")
				So(got.ExperienceYears, ShouldEqual, 1)
				So(got.Seniority, ShouldEqual, model.SeniorityEntry)
				So(got.Connections, ShouldEqual, 0)
			})
		})

		Convey("When connections are negative", func() {
			got := n.Normalize(model.RawProfile{Connections: -3})

			Convey("Then they are clamped to zero", func() {
				So(got.Connections, ShouldEqual, 0)
			})
		})
	})
}

func TestCanonicalSkills(t *testing.T) {
	Convey("Given messy skill input", t, func() {
		skills := []string{" Python", "SQL", "python ", "", "  ", "Spark"}

		Convey("When canonicalized", func() {
			got := normalize.CanonicalSkills(skills)

			Convey("Then the result is folded, deduplicated and sorted", func() {
				So(got, ShouldResemble, []string{"python", "spark", "sql"})
			})
		})
	})
}

func TestSeniorityInference(t *testing.T) {
	Convey("Given a normalizer with default tables", t, func() {
		n := normalize.New(nil)

		cases := []struct {
			headline string
			years    []model.Position
			want     model.Seniority
		}{
			{"VP of Engineering", nil, model.SeniorityExecutive},
			{"Head of Data", nil, model.SeniorityExecutive},
			{"Senior Software Engineer", nil, model.SenioritySenior},
			{"Staff Machine Learning Engineer", nil, model.SenioritySenior},
			{"Junior Analyst", nil, model.SeniorityEntry},
		}

		Convey("Headline keywords decide the tier", func() {
			for _, c := range cases {
				got := n.Normalize(model.RawProfile{Headline: c.headline, Experience: c.years})
				So(got.Seniority, ShouldEqual, c.want)
			}
		})

		Convey("Executive markers win over senior markers", func() {
			got := n.Normalize(model.RawProfile{Headline: "Senior Director of Product"})
			So(got.Seniority, ShouldEqual, model.SeniorityExecutive)
		})

		Convey("Without keywords, experience thresholds decide", func() {
			short := n.Normalize(model.RawProfile{
				Headline:   "Data Analyst",
				Experience: []model.Position{{Duration: "2 yrs"}},
			})
			So(short.Seniority, ShouldEqual, model.SeniorityEntry)

			mid := n.Normalize(model.RawProfile{
				Headline:   "Data Analyst",
				Experience: []model.Position{{Duration: "4 yrs"}},
			})
			So(mid.Seniority, ShouldEqual, model.SeniorityMid)

			long := n.Normalize(model.RawProfile{
				Headline:   "Data Analyst",
				Experience: []model.Position{{Duration: "8 yrs"}},
			})
			So(long.Seniority, ShouldEqual, model.SenioritySenior)

			veteran := n.Normalize(model.RawProfile{
				Headline:   "Data Analyst",
				Experience: []model.Position{{Duration: "15 yrs"}},
			})
			So(veteran.Seniority, ShouldEqual, model.SeniorityExecutive)
		})
	})
}

func TestExperienceYears(t *testing.T) {
	Convey("Given a normalizer with default tables", t, func() {
		n := normalize.New(nil)

		Convey("Durations in years and months are summed", func() {
			got := n.Normalize(model.RawProfile{
				Experience: []model.Position{
					{Duration: "3 yrs 4 mos"},
					{Duration: "1 yr 9 mos"},
				},
			})

			// 40 + 21 months = 61 months = 5 whole years.
			So(got.ExperienceYears, ShouldEqual, 5)
		})

		Convey("Unparseable durations fall back to two years per position", func() {
			got := n.Normalize(model.RawProfile{
				Experience: []model.Position{
					{Duration: "a while"},
					{Duration: "ages"},
					{Duration: ""},
				},
			})

			So(got.ExperienceYears, ShouldEqual, 6)
		})

		Convey("The floor is one year", func() {
			got := n.Normalize(model.RawProfile{
				Experience: []model.Position{{Duration: "5 mos"}},
			})

			So(got.ExperienceYears, ShouldEqual, 1)
		})
	})
}

func TestLocationAndIndustry(t *testing.T) {
	Convey("Given a normalizer with default tables", t, func() {
		n := normalize.New(nil)

		Convey("Location and industry come from the taxonomy", func() {
			got := n.Normalize(model.RawProfile{
				Headline: "Senior Software Engineer at Stripe",
				Location: "Sunnyvale, California",
			})

			So(got.Industry, ShouldEqual, "Technology")
			So(got.Location, ShouldEqual, "San Francisco Bay Area")
		})
	})
}
