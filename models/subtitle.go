package models

// SubtitleSegment is a single timed piece of subtitle text.
// Start and End are in seconds. Display order is the order segments
// appear in an edit's subtitle list; it is not required to be
// monotonic in time.
type SubtitleSegment struct {
	Start float64 `json:"start" validate:"gte=0"`
	End   float64 `json:"end" validate:"gt=0"`
	Text  string  `json:"text" validate:"required"`
}
