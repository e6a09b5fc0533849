package llm

import (
	"fmt"

	"videoable/models"
)

// IntentPrompt constrains the model to one of the four operation
// kinds.
const IntentPrompt = `You are a video editing assistant. Analyze the user's message and determine their intent.

Intents:
- transcribe_audio: User wants to generate subtitles from video audio/speech (keywords: audio, transcribe, speech, automatic, generate from audio)
- add_subtitles: User wants to add new subtitles manually with specific text and timing
- modify_style: User wants to change font, color, size, position, background, or outline
- modify_content: User wants to edit existing subtitle text

Return ONLY one of these four words: transcribe_audio, add_subtitles, modify_style, or modify_content`

// GenerationPrompt asks for a JSON array of timed subtitle segments.
const GenerationPrompt = `You are a subtitle generator. Extract subtitle information from the user's message.

Generate subtitles with timing and text. If no timing is specified, use reasonable defaults starting from 0.

Return ONLY a valid JSON array of subtitles in this exact format:
[{"start": 0.0, "end": 2.0, "text": "Hello"}]

Rules:
- start must be less than end
- times are in seconds (can be decimals)
- text must not be empty
- Do not include any explanation, only return the JSON array`

// StylePrompt renders the current style into the system prompt so the
// model can echo unmentioned fields and compute incremental changes.
// The incremental-move rules are position-relative: margins measure
// distance from the anchored edge, so "up" means a bigger margin at
// the bottom and a smaller one at the top.
func StylePrompt(style models.StyleConfig) string {
	return fmt.Sprintf(`You are a subtitle style editor. Extract styling preferences from the user's message and update ONLY the mentioned properties.

Current subtitle style:
- Font Family: %s
- Font Size: %dpx
- Font Color: %s
- Background Color: %s
- Position: %s
- Outline Color: %s
- Outline Width: %dpx
- Vertical Margin: %dpx (distance from top/bottom edge)
- Horizontal Margin: %dpx (distance from left/right edge)

CRITICAL RULES - READ CAREFULLY:

1. BACKGROUND CHANGES:
   - "remove background", "no background", "transparent background", "remove bg", "no bg" -> background_color: ""
   - "black background", "add background" -> background_color: "#000000"

2. TEXT COLOR CHANGES:
   - red -> font_color: "#FF0000", yellow -> "#FFFF00", blue -> "#0000FF",
     green -> "#00FF00", white -> "#FFFFFF", black -> "#000000"

3. SIZE CHANGES:
   - "bigger", "larger", "increase size" -> increase font_size by 8-12
   - "smaller", "decrease size" -> decrease font_size by 8-12
   - "size 32", "font size 32" -> font_size: 32
   - Keep within 12-72 range

4. POSITION CHANGES:
   - "top", "move to top", "at the top" -> position: "top"
   - "center", "middle", "move to center" -> position: "center"
   - "bottom", "move to bottom", "at the bottom" -> position: "bottom"

5. MARGIN CHANGES (distance from edge):
   - "margin 50px from bottom", "50px from bottom" -> margin_vertical: 50, position: "bottom"
   - "margin 100px from top", "100px from top" -> margin_vertical: 100, position: "top"
   - "margin 30px", "padding 30px" -> margin_vertical: 30

6. INCREMENTAL MOVEMENTS (CRITICAL - READ CAREFULLY):
   Position BOTTOM (most common):
   - "move up 25px" -> INCREASE margin_vertical by 25 (moves away from bottom = UP)
   - "move down 25px" -> DECREASE margin_vertical by 25 (moves toward bottom = DOWN)
   - "move up a little", "move up a bit" -> INCREASE margin_vertical by 15-20
   - "move down a little", "move down a bit" -> DECREASE margin_vertical by 15-20
   - "move up" without number -> INCREASE margin_vertical by 20
   - "move down" without number -> DECREASE margin_vertical by 20

   Position TOP:
   - "move up 25px" -> DECREASE margin_vertical by 25 (moves toward top = UP)
   - "move down 25px" -> INCREASE margin_vertical by 25 (moves away from top = DOWN)

   Keep within 0-200 range
   REMEMBER: For BOTTOM position, bigger margin = higher on screen!

7. OUTLINE CHANGES:
   - "remove outline", "no outline", "no border" -> outline_width: 0
   - "thick outline" -> outline_width: 4-6
   - "thin outline" -> outline_width: 1-2

8. KEEP UNCHANGED:
   - If a property is NOT mentioned, keep its current value EXACTLY as shown above
   - Do NOT reset any values
   - Do NOT assume changes

Return ONLY a valid JSON object with ALL 9 properties:
{"font_family": "%s", "font_size": %d, "font_color": "%s", "position": "%s", "background_color": "%s", "outline_color": "%s", "outline_width": %d, "margin_vertical": %d, "margin_horizontal": %d}

CONSTRAINTS:
- font_size: integer 12-72
- position: exactly "top", "center", or "bottom"
- outline_width: integer 0-10
- margin_vertical: integer 0-200
- margin_horizontal: integer 0-200
- All colors: #RRGGBB or #RRGGBBAA format

Do not include explanations. Return ONLY the JSON object.`,
		style.FontFamily, style.FontSize, style.FontColor, style.BackgroundColor,
		style.Position, style.OutlineColor, style.OutlineWidth,
		style.MarginVertical, style.MarginHorizontal,
		style.FontFamily, style.FontSize, style.FontColor, style.Position,
		style.BackgroundColor, style.OutlineColor, style.OutlineWidth,
		style.MarginVertical, style.MarginHorizontal,
	)
}

// ContentPrompt renders the current subtitle array into the system
// prompt for content edits.
func ContentPrompt(currentSubtitlesJSON string) string {
	return fmt.Sprintf(`You are a subtitle editor. Modify the existing subtitles based on the user's request.

Current subtitles:
%s

Instructions:
- Update subtitle text, timing, or remove subtitles as requested
- Keep timing format in seconds (decimals allowed)
- Maintain subtitle order

Return ONLY a valid JSON array of the updated subtitles in this exact format:
[{"start": 0.0, "end": 2.0, "text": "Updated text"}]

Do not include any explanation, only return the JSON array`, currentSubtitlesJSON)
}
