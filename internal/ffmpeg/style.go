package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"videoable/models"
)

// HexToASSColor converts a hex color (#RRGGBB or #RRGGBBAA) to the
// ASS color encoding &HAABBGGRR. ASS inverts the alpha byte: 00 is
// opaque, FF transparent, so a 6-digit input becomes fully opaque and
// an 8-digit input carries alpha 255-AA. Any other length falls back
// to opaque white.
func HexToASSColor(hexColor string) string {
	h := strings.TrimPrefix(hexColor, "#")
	switch len(h) {
	case 8:
		r, g, b, a, err := parseRGBA(h)
		if err != nil {
			return "&H00FFFFFF"
		}
		return fmt.Sprintf("&H%02X%02X%02X%02X", 255-a, b, g, r)
	case 6:
		r, g, b, _, err := parseRGBA(h + "00")
		if err != nil {
			return "&H00FFFFFF"
		}
		return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
	default:
		return "&H00FFFFFF"
	}
}

func parseRGBA(h string) (r, g, b, a int, err error) {
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, perr := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, 0, perr
		}
		vals[i] = int(v)
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// ForceStyle builds the force_style directive string for the ffmpeg
// subtitles filter from a StyleConfig.
//
// BorderStyle 3 draws an opaque box behind the text; the exact
// transparent sentinel switches to BorderStyle 1 (outline only).
// Center alignment gets no vertical margin: ASS centers vertically on
// its own and a MarginV would push the line off-center.
func ForceStyle(style models.StyleConfig) string {
	marginV := style.MarginVertical
	marginH := style.MarginHorizontal

	var position string
	switch style.Position {
	case models.PositionTop:
		position = fmt.Sprintf("Alignment=8,MarginV=%d,MarginL=%d,MarginR=%d", marginV, marginH, marginH)
	case models.PositionCenter:
		position = fmt.Sprintf("Alignment=5,MarginL=%d,MarginR=%d", marginH, marginH)
	default:
		position = fmt.Sprintf("Alignment=2,MarginV=%d,MarginL=%d,MarginR=%d", marginV, marginH, marginH)
	}

	borderStyle := 3
	if style.BackgroundColor == models.TransparentBackground {
		borderStyle = 1
	}

	return fmt.Sprintf(
		"FontName=%s,FontSize=%d,PrimaryColour=%s,BackColour=%s,OutlineColour=%s,BorderStyle=%d,Outline=%d,%s",
		style.FontFamily,
		style.FontSize,
		HexToASSColor(style.FontColor),
		HexToASSColor(style.BackgroundColor),
		HexToASSColor(style.OutlineColor),
		borderStyle,
		style.OutlineWidth,
		position,
	)
}
