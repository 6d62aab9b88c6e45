package output

import (
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implWriter struct {
	dir    string
	docx   bool
	logger logger.Logger
}

// New creates a Writer rooted at dir. With docx set, every saved summary
// is also rendered to a .docx file next to the markdown.
func New(dir string, docx bool, log logger.Logger) Writer {
	return &implWriter{
		dir:    dir,
		docx:   docx,
		logger: log,
	}
}
