package core

import (
	"strings"

	"github.com/google/uuid"
)

// Snippet is the central entity of the domain: a named text fragment
// grouped by folder and tagged with a language.
//
// ID is assigned once at creation and is never rewritten by any operation.
// Every other field is free-form; Name is not required to be unique.
type Snippet struct {
	ID       uuid.UUID `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Folder   string    `json:"folder" yaml:"folder"`
	Body     string    `json:"body" yaml:"body"`
	Language Language  `json:"language" yaml:"language"`
}

// DefaultSnippet returns the template snippet with a fresh ID.
func DefaultSnippet() Snippet {
	return Snippet{
		ID:       uuid.New(),
		Name:     "New Snippet",
		Body:     "Lorem Ipsum",
		Language: Miscellaneous,
	}
}

// NewSnippet builds a snippet from a compound specifier ("folder/name.ext") and a body.
func NewSnippet(specifier, body string) Snippet {
	folder, name, lang := ParseName(specifier)
	return Snippet{
		ID:       uuid.New(),
		Name:     name,
		Folder:   folder,
		Body:     body,
		Language: lang,
	}
}

// Path returns "folder/name", or just the name when the snippet is ungrouped.
func (s Snippet) Path() string {
	if s.Folder == "" {
		return s.Name
	}
	return s.Folder + "/" + s.Name
}

// ParseName splits a specifier into folder, name and language.
//
// The folder is everything before the first "/". Within the remainder, the
// name is everything before the first "." and the language is classified from
// the text between the first and the second dot, so "a.tar.gz" classifies "tar".
// Specifiers without a dot are Miscellaneous. Never fails.
func ParseName(specifier string) (folder, name string, lang Language) {
	remainder := specifier
	if before, after, found := strings.Cut(specifier, "/"); found {
		folder, remainder = before, after
	}

	name, ext, found := strings.Cut(remainder, ".")
	if !found {
		return folder, remainder, Miscellaneous
	}

	ext, _, _ = strings.Cut(ext, ".")
	return folder, name, Classify(ext)
}
