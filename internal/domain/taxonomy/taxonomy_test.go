package taxonomy_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/domain/taxonomy"
)

func TestIndustryForHeadline(t *testing.T) {
	Convey("Given the default taxonomy", t, func() {
		tax := taxonomy.Default()

		Convey("When the headline carries a technology keyword", func() {
			got := tax.IndustryForHeadline("Senior Software Engineer at Stripe")

			Convey("Then it maps to Technology", func() {
				So(got, ShouldEqual, "Technology")
			})
		})

		Convey("When the headline carries a finance keyword", func() {
			got := tax.IndustryForHeadline("Investment Banking Associate")

			Convey("Then it maps to Finance", func() {
				So(got, ShouldEqual, "Finance")
			})
		})

		Convey("When no keyword matches", func() {
			got := tax.IndustryForHeadline("Professional Dog Walker")

			Convey("Then it falls back to Other", func() {
				So(got, ShouldEqual, taxonomy.OtherIndustry)
			})
		})

		Convey("When the headline is empty", func() {
			So(tax.IndustryForHeadline(""), ShouldEqual, taxonomy.OtherIndustry)
		})
	})
}

func TestIndustriesAdjacent(t *testing.T) {
	Convey("Given the default adjacency table", t, func() {
		tax := taxonomy.Default()

		Convey("Adjacency holds in both directions", func() {
			So(tax.IndustriesAdjacent("Technology", "Finance"), ShouldBeTrue)
			So(tax.IndustriesAdjacent("Finance", "Technology"), ShouldBeTrue)
		})

		Convey("Identical industries are not adjacent", func() {
			So(tax.IndustriesAdjacent("Technology", "Technology"), ShouldBeFalse)
		})

		Convey("Unrelated industries are not adjacent", func() {
			So(tax.IndustriesAdjacent("Healthcare", "Retail"), ShouldBeFalse)
		})
	})
}

func TestNormalizeLocation(t *testing.T) {
	Convey("Given the default location groups", t, func() {
		tax := taxonomy.Default()

		Convey("Metro aliases collapse to the metro name", func() {
			So(tax.NormalizeLocation("Sunnyvale, California"), ShouldEqual, "San Francisco Bay Area")
			So(tax.NormalizeLocation("Brooklyn, New York"), ShouldEqual, "New York City")
			So(tax.NormalizeLocation("Bengaluru"), ShouldEqual, "Bangalore")
		})

		Convey("Non-metro locations collapse to the country group", func() {
			So(tax.NormalizeLocation("Houston, Texas"), ShouldEqual, "United States")
			So(tax.NormalizeLocation("Berlin, Germany"), ShouldEqual, "Germany")
		})

		Convey("Unrecognized locations pass through trimmed", func() {
			So(tax.NormalizeLocation("  Reykjavik  "), ShouldEqual, "Reykjavik")
		})

		Convey("Empty input becomes Unknown", func() {
			So(tax.NormalizeLocation("   "), ShouldEqual, taxonomy.UnknownLocation)
		})
	})
}

func TestRemoteHubs(t *testing.T) {
	Convey("Given the default remote hubs", t, func() {
		tax := taxonomy.Default()

		So(tax.IsRemoteHub("San Francisco Bay Area"), ShouldBeTrue)
		So(tax.IsRemoteHub("Remote - EMEA"), ShouldBeTrue)
		So(tax.IsRemoteHub("Omaha"), ShouldBeFalse)
	})
}

func TestFamilyForHeadline(t *testing.T) {
	Convey("Given the default role families", t, func() {
		tax := taxonomy.Default()

		Convey("A data science headline lands in the data family", func() {
			fam, ok := tax.FamilyForHeadline("Staff Data Scientist, Recommendations")

			So(ok, ShouldBeTrue)
			So(fam.Name, ShouldEqual, "data")
			So(fam.HasSeniorityMarker("Staff Data Scientist"), ShouldBeTrue)
			So(fam.IsAdjacent("software"), ShouldBeTrue)
			So(fam.IsAdjacent("marketing"), ShouldBeFalse)
		})

		Convey("A recruiting headline lands in the recruiting family", func() {
			fam, ok := tax.FamilyForHeadline("Technical Recruiter at Canva")

			So(ok, ShouldBeTrue)
			So(fam.Name, ShouldEqual, taxonomy.RecruitingFamily)
		})

		Convey("An unmatched headline yields no family", func() {
			_, ok := tax.FamilyForHeadline("Sommelier")

			So(ok, ShouldBeFalse)
		})
	})
}

func TestTemplateForHeadline(t *testing.T) {
	Convey("Given the default job templates", t, func() {
		tax := taxonomy.Default()

		Convey("A matching headline returns the template skill set", func() {
			tpl, ok := tax.TemplateForHeadline("Lead Data Scientist")

			So(ok, ShouldBeTrue)
			So(tpl.Title, ShouldEqual, "Data Scientist")
			So(tpl.Skills, ShouldContain, "python")
		})

		Convey("An unmatched headline returns nothing", func() {
			_, ok := tax.TemplateForHeadline("Veterinarian")

			So(ok, ShouldBeFalse)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given taxonomy loading", t, func() {
		ctx := context.Background()

		Convey("When the path is empty", func() {
			tax, err := taxonomy.Load(ctx, "")

			Convey("Then the embedded defaults are returned", func() {
				So(err, ShouldBeNil)
				So(tax.Version, ShouldEqual, taxonomy.DefaultVersion)
				So(tax.Families, ShouldNotBeEmpty)
			})
		})

		Convey("When a YAML overlay is provided", func() {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			overlay := "version: \"2026.0\"\nremote_hubs:\n  - Lisbon\n"
			So(os.WriteFile(path, []byte(overlay), 0o600), ShouldBeNil)

			tax, err := taxonomy.Load(ctx, path)

			Convey("Then overlaid fields replace the defaults", func() {
				So(err, ShouldBeNil)
				So(tax.Version, ShouldEqual, "2026.0")
				So(tax.IsRemoteHub("Lisbon"), ShouldBeTrue)
			})

			Convey("Then untouched tables keep their defaults", func() {
				So(err, ShouldBeNil)
				So(tax.Industries, ShouldNotBeEmpty)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := taxonomy.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then a load error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, taxonomy.ErrLoadTaxonomy)
			})
		})
	})
}
