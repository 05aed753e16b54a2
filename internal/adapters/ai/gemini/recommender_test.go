package gemini

import (
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/rapporthq/rapport/internal/domain/model"
)

func TestNewRequiresAPIKey(t *testing.T) {
	Convey("Creating a recommender without an API key fails", t, func() {
		_, err := New(context.Background(), "   ")

		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "api key")
	})
}

func TestUninitializedRecommender(t *testing.T) {
	Convey("A nil recommender degrades with an error instead of panicking", t, func() {
		var r *Recommender

		So(r.Model(), ShouldBeEmpty)

		_, err := r.Recommend(context.Background(), model.ScoreResult{})
		So(err, ShouldNotBeNil)
	})
}

func TestBuildPrompt(t *testing.T) {
	Convey("Given a score result with explanations and affinity", t, func() {
		result := model.ScoreResult{
			Score:       82.5,
			Tier:        model.TierStronglyConnect,
			Explanation: []string{"career alignment scored 95 (ideal mentorship gap)"},
			RoleAffinity: &model.RoleAffinity{
				Kind:   model.AffinitySameFamily,
				Bonus:  40,
				Reason: "both in the data family, target more senior",
			},
		}

		prompt := buildPrompt(result)

		Convey("The prompt carries tier, factors and role relationship", func() {
			So(prompt, ShouldContainSubstring, "82.5/100")
			So(prompt, ShouldContainSubstring, string(model.TierStronglyConnect))
			So(prompt, ShouldContainSubstring, "ideal mentorship gap")
			So(prompt, ShouldContainSubstring, "both in the data family")
		})

		Convey("The prompt ends with the rephrasing instruction", func() {
			So(strings.HasSuffix(prompt, "Do not mention the numeric score."), ShouldBeTrue)
		})
	})
}
