package prompt

import "fmt"

// BuildProfileSearchPrompt asks a search-grounded model to retrieve the
// public profile page content for a handle.
func BuildProfileSearchPrompt(vars SearchPromptVars) string {
	return fmt.Sprintf(`Search the web for the public X (formerly Twitter) profile page of the user @%s.

Report everything visible on the profile itself:
- display name and @username
- whether the account carries a verification badge
- the bio text, verbatim
- the listed location, if any
- follower count, following count, total post count and listed count

Quote the numbers exactly as the profile page shows them. If you cannot find
the profile, say so explicitly instead of guessing.`, vars.Handle)
}
