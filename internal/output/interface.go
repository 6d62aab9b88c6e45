package output

// Writer persists summaries as numbered markdown files. The presence of a
// page's file is the checkpoint that marks the page as done.
type Writer interface {
	Path(saveNumber int, title string) string
	Exists(saveNumber int, title string) bool
	Save(saveNumber int, title, content string) (string, error)
}
