package roast

import (
	"fmt"
	"strings"

	"github.com/kapu/roastmaster-go/internal/constants"
	"github.com/kapu/roastmaster-go/internal/domain"
	"github.com/kapu/roastmaster-go/internal/util"
)

// Compose builds the deterministic roast from context fields alone. It has
// no external dependency and always returns a non-empty string for a
// resolved profile.
func Compose(rc *domain.RoastContext) string {
	profile := rc.Profile
	lines := make([]string, 0, 6)

	if profile.Followers > 0 || profile.PostCount > 0 {
		lines = append(lines, fmt.Sprintf("@%s, %s followers signed up for %s posts of chaos.",
			profile.Username,
			util.AbbreviateCount(profile.Followers),
			util.AbbreviateCount(profile.PostCount),
		))
		lines = append(lines, fmt.Sprintf("You follow %s people which makes your clout exchange rate a %s:1 hustle.",
			util.AbbreviateCount(profile.Following),
			util.FormatRatio(profile.FollowerRatio),
		))
	} else {
		lines = append(lines, fmt.Sprintf("@%s, your profile gave us zero countable numbers, so today we roast pure vibes.",
			profile.Username,
		))
	}

	cleanBio := util.CollapseWhitespace(profile.Bio)
	if bioLen := len([]rune(cleanBio)); bioLen > 0 {
		lines = append(lines, fmt.Sprintf("Bio is %d characters of %q and still manages to dodge personality.",
			bioLen,
			BioPreview(cleanBio),
		))
	} else {
		lines = append(lines, "No bio detected. Bold move to give us zero context and maximum cringe.")
	}

	if rc.AvgEngagement > 0 {
		lines = append(lines, fmt.Sprintf("Recent posts average ~%d interactions. That's not virality, that's a group chat.",
			rc.AvgEngagement,
		))
	} else {
		lines = append(lines, "Engagement registers as a flatline, so we're roasting the digital ghost of your content.")
	}

	if rc.LastActivityHours != nil {
		lines = append(lines, fmt.Sprintf("Your last post hit the feed %dh ago and it's already aging like milk in direct sunlight.",
			*rc.LastActivityHours,
		))
	} else {
		lines = append(lines, "Couldn't find a fresh post. Either you're private or procrastinating content like rent.")
	}

	lines = append(lines, constants.RoastConfig.Closer)

	return strings.Join(lines, " ")
}

// BioPreview truncates a cleaned bio for quoting: anything over 120
// characters is cut to 117 plus an ellipsis.
func BioPreview(cleanBio string) string {
	runes := []rune(cleanBio)
	if len(runes) <= constants.RoastConfig.BioPreviewMax {
		return cleanBio
	}
	return string(runes[:constants.RoastConfig.BioPreviewCut]) + "..."
}
