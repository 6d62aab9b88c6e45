package cache

import (
	"os"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implCache struct {
	dir    string
	logger logger.Logger
	now    func() time.Time
	remove func(name string) error
}

// New creates a file-backed Cache rooted at dir.
func New(dir string, log logger.Logger) Cache {
	return &implCache{
		dir:    dir,
		logger: log,
		now:    time.Now,
		remove: os.Remove,
	}
}
