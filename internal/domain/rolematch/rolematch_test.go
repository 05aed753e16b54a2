package rolematch_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/domain/model"
	"github.com/rapporthq/rapport/internal/domain/rolematch"
)

func withHeadline(id, headline string) model.NormalizedProfile {
	return model.NormalizedProfile{ID: id, Headline: headline}
}

func TestDetect(t *testing.T) {
	Convey("Given the classifier with default tables", t, func() {
		c := rolematch.New(nil)

		Convey("Family and seniority marker are detected independently", func() {
			d := c.Detect("Staff Data Scientist")

			So(d.Found, ShouldBeTrue)
			So(d.Family, ShouldEqual, "data")
			So(d.Senior, ShouldBeTrue)
		})

		Convey("A junior headline in the same family is not senior", func() {
			d := c.Detect("Data Analyst")

			So(d.Found, ShouldBeTrue)
			So(d.Family, ShouldEqual, "data")
			So(d.Senior, ShouldBeFalse)
		})

		Convey("An unmatched headline yields no detection", func() {
			So(c.Detect("Sommelier").Found, ShouldBeFalse)
		})
	})
}

func TestAffinitySameFamily(t *testing.T) {
	Convey("Given two profiles in the same family", t, func() {
		c := rolematch.New(nil)

		Convey("When the target is senior and the viewer is not", func() {
			got := c.Affinity(
				withHeadline("a", "Data Analyst"),
				withHeadline("b", "Principal Data Scientist"),
			)

			Convey("Then the mentorship bonus applies", func() {
				So(got.Kind, ShouldEqual, model.AffinitySameFamily)
				So(got.Bonus, ShouldEqual, 40)
				So(got.Reason, ShouldNotBeEmpty)
			})
		})

		Convey("When both share the seniority flag", func() {
			got := c.Affinity(
				withHeadline("a", "Senior Backend Engineer"),
				withHeadline("b", "Staff Software Engineer"),
			)

			Convey("Then the peer bonus applies", func() {
				So(got.Kind, ShouldEqual, model.AffinitySameFamily)
				So(got.Bonus, ShouldEqual, 35)
			})
		})

		Convey("When the viewer is senior and the target is not", func() {
			got := c.Affinity(
				withHeadline("a", "Staff Software Engineer"),
				withHeadline("b", "Backend Engineer"),
			)

			Convey("Then only the base bonus applies", func() {
				So(got.Bonus, ShouldEqual, 30)
			})
		})
	})
}

func TestAffinityAdjacentAndRecruiter(t *testing.T) {
	Convey("Given the classifier with default tables", t, func() {
		c := rolematch.New(nil)

		Convey("Adjacent families get the adjacency bonus", func() {
			got := c.Affinity(
				withHeadline("a", "Data Analyst"),
				withHeadline("b", "Product Manager"),
			)

			So(got.Kind, ShouldEqual, model.AffinityAdjacentFamily)
			So(got.Bonus, ShouldEqual, 20)
		})

		Convey("A senior adjacent target adds five", func() {
			got := c.Affinity(
				withHeadline("a", "Data Analyst"),
				withHeadline("b", "Principal Product Manager"),
			)

			So(got.Bonus, ShouldEqual, 25)
		})

		Convey("A technical recruiter target earns the tech-recruiter bonus", func() {
			got := c.Affinity(
				withHeadline("a", "Software Engineer"),
				withHeadline("b", "Tech Recruiter at Canva"),
			)

			So(got.Kind, ShouldEqual, model.AffinityRecruiter)
			So(got.Bonus, ShouldEqual, 25)
		})

		Convey("A non-technical recruiter target earns the general bonus", func() {
			got := c.Affinity(
				withHeadline("a", "Financial Analyst"),
				withHeadline("b", "Talent Acquisition Specialist"),
			)

			So(got.Kind, ShouldEqual, model.AffinityRecruiter)
			So(got.Bonus, ShouldEqual, 10)
		})

		Convey("Unrelated families yield no bonus and no reason", func() {
			got := c.Affinity(
				withHeadline("a", "Financial Analyst"),
				withHeadline("b", "UX Designer"),
			)

			So(got.Kind, ShouldEqual, model.AffinityNone)
			So(got.Bonus, ShouldEqual, 0)
			So(got.Reason, ShouldBeEmpty)
		})

		Convey("No detectable family on either side yields none", func() {
			got := c.Affinity(
				withHeadline("a", "Sommelier"),
				withHeadline("b", "Park Ranger"),
			)

			So(got.Kind, ShouldEqual, model.AffinityNone)
		})
	})
}

func TestSynergy(t *testing.T) {
	Convey("Synergy maps each affinity kind to its component score", t, func() {
		So(rolematch.Synergy(model.AffinitySameFamily), ShouldEqual, 100)
		So(rolematch.Synergy(model.AffinityAdjacentFamily), ShouldEqual, 70)
		So(rolematch.Synergy(model.AffinityRecruiter), ShouldEqual, 60)
		So(rolematch.Synergy(model.AffinityNone), ShouldEqual, 40)
	})
}
