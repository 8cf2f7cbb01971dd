package prompt

import "fmt"

// BuildProfileExtractionPrompt instructs the model to convert raw search
// output into the fixed profile JSON shape.
func BuildProfileExtractionPrompt(vars ExtractionPromptVars) string {
	return fmt.Sprintf(`Below is raw search output describing the X profile @%s.

## Search Output:
%s

## Task:
Extract the profile data into a single JSON object with EXACTLY these keys:

{
  "name": string or null,
  "username": string or null,
  "verified": boolean,
  "description": string or null,
  "location": string or null,
  "followers_count": number,
  "following_count": number,
  "tweet_count": number,
  "listed_count": number
}

**Rules**:
- Output the JSON object only, no commentary and no code fences.
- Counts written as "1.2K" or "3M" must be expanded to plain integers.
- Use 0 for any count the search output does not state.
- Use null for any string the search output does not state.
- Do not invent data that is not present in the search output.`,
		vars.Handle,
		vars.SearchText,
	)
}
