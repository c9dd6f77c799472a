package constant

// In-process pub/sub topics.
const (
	TopicDocumentChanged = "document.changed"
)
