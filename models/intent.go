package models

// Intent is the operation kind resolved from a chat message.
type Intent string

const (
	IntentTranscribeAudio Intent = "transcribe_audio"
	IntentAddSubtitles    Intent = "add_subtitles"
	IntentModifyStyle     Intent = "modify_style"
	IntentModifyContent   Intent = "modify_content"
)

// ValidIntent reports whether s is one of the four operation kinds.
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentTranscribeAudio, IntentAddSubtitles, IntentModifyStyle, IntentModifyContent:
		return true
	}
	return false
}
