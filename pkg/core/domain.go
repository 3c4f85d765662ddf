package core

// CollectionData is the persisted shape of a snippet collection.
// The storage backend the collection holds is never part of it.
type CollectionData struct {
	Snippets []Snippet `json:"snippets" yaml:"snippets"`
}

// ConfigData is the persisted shape of the user configuration.
type ConfigData struct {
	Theme string `json:"theme" yaml:"theme"`
}

// EventType represents the type of change observed on a backing store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the persisted state, made by this or another process.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}
