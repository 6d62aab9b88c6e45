package output

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	codeFont = "Courier New"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reInline  = regexp.MustCompile("\\*\\*(.+?)\\*\\*|`([^`]+)`")
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reQuote   = regexp.MustCompile(`^>\s?(.*)$`)
)

// markdownToDocx renders a summary to a styled docx file. Only the block
// forms LLM summaries commonly use are recognized; anything else becomes a
// plain paragraph.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			codeStyle.apply(doc.AddParagraph(""), line)
			continue
		}

		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			addRichText(doc.AddParagraph(""), "\u2022 "+m[1])
		case reQuote.MatchString(trimmed):
			m := reQuote.FindStringSubmatch(trimmed)
			quoteStyle.apply(doc.AddParagraph(""), stripInline.Replace(m[1]))
		default:
			// numbered items keep their number
			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	return doc.SaveTo(outputPath)
}

// headingSizes maps heading depth to point size; deeper headings use fontSize.
var headingSizes = map[int]uint64{1: 16, 2: 15, 3: 14}

func headingSize(level int) uint64 {
	if size, ok := headingSizes[level]; ok {
		return size
	}
	return fontSize
}

// runStyle is the character formatting applied to one docx run.
type runStyle struct {
	font   string
	size   uint64
	color  string
	bold   bool
	italic bool
}

var (
	bodyStyle  = runStyle{font: fontName, size: fontSize, color: "000000"}
	quoteStyle = runStyle{font: fontName, size: fontSize, color: "555555", italic: true}
	codeStyle  = runStyle{font: codeFont, size: fontSize - 2, color: "000000"}
)

func (st runStyle) apply(p *docx.Paragraph, text string) {
	run := p.AddText(text).Font(st.font).Size(st.size).Color(st.color)
	if st.bold {
		run.Bold(true)
	}
	if st.italic {
		run.Italic(true)
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	st := bodyStyle
	st.bold = bold
	st.size = size
	st.apply(p, stripInline.Replace(text))
}

// span is a piece of inline text with its emphasis resolved.
type span struct {
	text string
	bold bool
	code bool
}

// splitInline breaks text into plain, **bold** and `code` spans. Markers
// that do not pair up are dropped from the plain text.
func splitInline(text string) []span {
	var spans []span
	plain := func(s string) {
		if s = stripInline.Replace(s); s != "" {
			spans = append(spans, span{text: s})
		}
	}

	last := 0
	for _, m := range reInline.FindAllStringSubmatchIndex(text, -1) {
		plain(text[last:m[0]])
		if m[2] >= 0 {
			spans = append(spans, span{text: stripInline.Replace(text[m[2]:m[3]]), bold: true})
		} else {
			spans = append(spans, span{text: text[m[4]:m[5]], code: true})
		}
		last = m[1]
	}
	plain(text[last:])

	return spans
}

func addRichText(p *docx.Paragraph, text string) {
	for _, sp := range splitInline(text) {
		st := bodyStyle
		switch {
		case sp.code:
			st = codeStyle
			st.size = fontSize
		case sp.bold:
			st.bold = true
		}
		st.apply(p, sp.text)
	}
}

var stripInline = strings.NewReplacer("**", "", "__", "", "`", "")
