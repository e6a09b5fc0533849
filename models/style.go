package models

// Subtitle positions on the video frame.
const (
	PositionTop    = "top"
	PositionCenter = "center"
	PositionBottom = "bottom"
)

// TransparentBackground is the sentinel for a fully transparent
// background box. Rendering switches to outline-only mode when the
// background color equals this value exactly.
const TransparentBackground = "#00000000"

// Bounds for the numeric style fields.
const (
	MinFontSize     = 12
	MaxFontSize     = 72
	MinOutlineWidth = 0
	MaxOutlineWidth = 10
	MinMargin       = 0
	MaxMargin       = 200
)

// StyleConfig describes how subtitles are rendered onto the video.
// Colors are hex strings (#RRGGBB or #RRGGBBAA); an empty background
// color means transparent.
type StyleConfig struct {
	FontFamily       string `json:"font_family"`
	FontSize         int    `json:"font_size"`
	FontColor        string `json:"font_color"`
	BackgroundColor  string `json:"background_color"`
	Position         string `json:"position"`
	OutlineColor     string `json:"outline_color"`
	OutlineWidth     int    `json:"outline_width"`
	MarginVertical   int    `json:"margin_vertical"`
	MarginHorizontal int    `json:"margin_horizontal"`
}

// DefaultStyle returns the canonical default style: white Arial on a
// black box at the bottom of the frame.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		FontFamily:       "Arial",
		FontSize:         24,
		FontColor:        "#FFFFFF",
		BackgroundColor:  "#000000",
		Position:         PositionBottom,
		OutlineColor:     "#000000",
		OutlineWidth:     2,
		MarginVertical:   50,
		MarginHorizontal: 0,
	}
}

// DefaultMarginVertical is the vertical margin of DefaultStyle. The
// summarizer only reports the margin when it differs from this.
const DefaultMarginVertical = 50

// ValidPosition reports whether p is one of the three known positions.
func ValidPosition(p string) bool {
	switch p {
	case PositionTop, PositionCenter, PositionBottom:
		return true
	}
	return false
}

// Clamp forces every numeric field back into its allowed range.
// Called after any merge so that no instruction, however phrased, can
// push a value out of bounds.
func (s *StyleConfig) Clamp() {
	s.FontSize = clampInt(s.FontSize, MinFontSize, MaxFontSize)
	s.OutlineWidth = clampInt(s.OutlineWidth, MinOutlineWidth, MaxOutlineWidth)
	s.MarginVertical = clampInt(s.MarginVertical, MinMargin, MaxMargin)
	s.MarginHorizontal = clampInt(s.MarginHorizontal, MinMargin, MaxMargin)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
