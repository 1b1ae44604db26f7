package analysis

import (
	"fmt"
	"strings"
)

const promptTemplate = `
You are an expert design assistant built into a design tool like Canva.
Your job is to review a user's design from its text and the fonts it uses.

DESIGN CONTEXT:
- Document Type: "%s"
- Main Heading: "%s"
- Full Text Content: "%s"
- Fonts Currently Used: %s

YOUR TASKS:
1.  Infer the primary 'Purpose' of the design from the text (e.g., "Promoting a summer sale").
2.  Infer the primary 'Mood' of the design from the text as one word (e.g., "Playful", "Formal", "Urgent").
3.  Evaluate each font in 'Fonts Currently Used'. Rate it "Good" or "Not Ideal" for the design's purpose and mood.
4.  For every "Not Ideal" font, give exactly one better font as 'recommendation' and a very short 'reason' (under 10 words).

Respond ONLY with a single valid JSON object using the structure below. Do not wrap it in markdown such as ` + "```json" + `.

{
  "purpose": "A short descriptive purpose",
  "mood": "A single word for the mood",
  "fontEvaluations": [
    {
      "fontName": "Name of Used Font",
      "evaluation": "Good",
      "recommendation": null,
      "reason": null
    },
    {
      "fontName": "Name of another Used Font",
      "evaluation": "Not Ideal",
      "recommendation": "Suggested Font Name",
      "reason": "Brief reason for suggestion."
    }
  ]
}
`

// FontList renders fonts the way the prompt expects them: comma separated,
// or the literal None.
func FontList(fonts []string) string {
	if len(fonts) == 0 {
		return "None"
	}
	return strings.Join(fonts, ", ")
}

// BuildPrompt embeds the request into the fixed instruction template.
func BuildPrompt(r Request) string {
	return fmt.Sprintf(promptTemplate, r.DocType, r.Heading, r.FullText, FontList(r.UsedFonts))
}
