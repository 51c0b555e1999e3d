package logger

// ErrorEntry mirrors errorEntry for assertions.
type ErrorEntry = errorEntry

// Message exposes the entry message.
func (e errorEntry) Message() string { return e.message }

// Metadata exposes the entry metadata.
func (e errorEntry) Metadata() map[string]any { return e.metadata }

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
