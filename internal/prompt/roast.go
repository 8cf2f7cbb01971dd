package prompt

import (
	"fmt"
	"strings"

	"github.com/kapu/roastmaster-go/internal/util"
)

// BuildRoastPrompt builds the roast generation prompt. The two context
// shapes differ: a metrics-bearing profile exposes its numbers to the model,
// while a metrics-sparse one forbids inventing any.
func BuildRoastPrompt(vars RoastPromptVars) string {
	var facts strings.Builder

	fmt.Fprintf(&facts, "- Handle: @%s\n", vars.Handle)
	if vars.DisplayName != "" {
		fmt.Fprintf(&facts, "- Display name: %s\n", vars.DisplayName)
	}
	fmt.Fprintf(&facts, "- Verified: %t\n", vars.Verified)
	if vars.Bio != "" {
		fmt.Fprintf(&facts, "- Bio: %q\n", vars.Bio)
	} else {
		facts.WriteString("- Bio: none\n")
	}
	if vars.Location != "" {
		fmt.Fprintf(&facts, "- Location: %s\n", vars.Location)
	}

	if vars.MetricsSparse {
		facts.WriteString("- Follower and engagement numbers: unavailable\n")
	} else {
		fmt.Fprintf(&facts, "- Followers: %s\n", util.FormatCount(vars.Followers))
		fmt.Fprintf(&facts, "- Following: %s\n", util.FormatCount(vars.Following))
		fmt.Fprintf(&facts, "- Total posts: %s\n", util.FormatCount(vars.PostCount))
		fmt.Fprintf(&facts, "- Follower/following ratio: %.2f\n", vars.FollowerRatio)
		if vars.HoursSincePost != nil {
			fmt.Fprintf(&facts, "- Hours since last post: %d\n", *vars.HoursSincePost)
			fmt.Fprintf(&facts, "- Interactions on last post: %d\n", vars.AvgEngagement)
		} else {
			facts.WriteString("- No recent post found\n")
		}
		if vars.LastPostText != "" {
			fmt.Fprintf(&facts, "- Last post: %q\n", vars.LastPostText)
		}
	}

	extraRule := ""
	if vars.MetricsSparse {
		extraRule = "\n- The numbers for this profile are unknown. NEVER invent follower counts, engagement figures or posting frequency. Roast the bio, the name and the vibe instead."
	}

	return fmt.Sprintf(`You are a stand-up comedian roasting an X profile.

## Profile Facts:
%s
## Style Contract:
- Savage but PG-13. No slurs, no harassment of protected traits.
- 4 to 6 punchy sentences, no preamble, no hashtags.
- Only reference facts listed above.%s
- The final sentence must be exactly: %q

Write the roast now.`,
		facts.String(),
		extraRule,
		vars.Closer,
	)
}
