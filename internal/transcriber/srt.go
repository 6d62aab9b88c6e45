package transcriber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

var (
	reSrtTime  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

// ParseSRT reads SRT cues into segments. Cue numbers are ignored and
// multi-line cue text is joined with a space.
func ParseSRT(content string) ([]models.Segment, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var (
		segments []models.Segment
		current  *models.Segment
		text     []string
	)

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(text, " "))
			segments = append(segments, *current)
		}
		current = nil
		text = nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := reSrtTime.FindStringSubmatch(trimmed); m != nil {
			flush()
			start, err := cueTime(m[1:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			end, err := cueTime(m[5:9])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			current = &models.Segment{Start: start, End: end}
			continue
		}

		if trimmed == "" || current == nil {
			continue
		}
		// cue number of the next block
		if reSrtIndex.MatchString(trimmed) && i+1 < len(lines) && reSrtTime.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}
		text = append(text, trimmed)
	}
	flush()

	return segments, nil
}

// Format renders segments in the requested mode.
func Format(segments []models.Segment, mode models.TranscriptMode) string {
	var b strings.Builder

	switch mode {
	case models.TranscriptTimestamped:
		for _, s := range segments {
			fmt.Fprintf(&b, "%s --> %s\n%s\n", formatTimestamp(s.Start), formatTimestamp(s.End), strings.TrimSpace(s.Text))
		}
	default:
		lines := make([]string, 0, len(segments))
		for _, s := range segments {
			if t := strings.TrimSpace(s.Text); t != "" {
				lines = append(lines, t)
			}
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

// formatTimestamp renders d as HH:MM:SS,mmm.
func formatTimestamp(d time.Duration) string {
	ms := d.Milliseconds()
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func cueTime(parts []string) (time.Duration, error) {
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("parse cue time %q: %w", strings.Join(parts, ":"), err)
		}
		v[i] = n
	}
	return time.Duration(v[0])*time.Hour +
		time.Duration(v[1])*time.Minute +
		time.Duration(v[2])*time.Second +
		time.Duration(v[3])*time.Millisecond, nil
}
