package domain

// Supported upload content types
const (
	MimeTypePDF       = "application/pdf"
	MimeTypeAudioMPEG = "audio/mpeg"
	MimeTypeAudioWAV  = "audio/wav"
)

// ShowNotesResult is the outcome of transcribing an episode and generating its notes
type ShowNotesResult struct {
	Transcript string `json:"transcript"`
	ShowNotes  string `json:"show_notes"`
}

// AudiobookResult holds the synthesized narration of a document
type AudiobookResult struct {
	Audio    []byte
	MimeType string
	Filename string
}
