package models

import "time"

// Page is one addressable part of a (possibly multi-part) video.
// Number is 1-based and assigned by the platform.
type Page struct {
	VideoID string `json:"bvid"`
	Number  int    `json:"page"`
	Title   string `json:"part"`
}

// WorkItem pairs a page with the number used for its output file.
type WorkItem struct {
	SaveNumber int
	Page       Page
}

// SubtitleTrack is one official subtitle track listed by the platform.
type SubtitleTrack struct {
	Language string `json:"lan"`
	URL      string `json:"subtitle_url"`
}

// TranscriptMode selects how recognized speech is rendered as text.
type TranscriptMode string

const (
	// TranscriptPlain joins trimmed segment texts with newlines.
	TranscriptPlain TranscriptMode = "plain"
	// TranscriptTimestamped prefixes every segment with its time range.
	TranscriptTimestamped TranscriptMode = "timestamped"
)

// Segment is one timed chunk of recognized speech.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}
