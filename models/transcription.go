package models

// TranscriptionData is the result of a speech-to-text call: the whole
// transcript plus segment-level timestamps when the backend provides
// them.
type TranscriptionData struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}

// TranscriptSegment is a single timed segment of a transcription.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
