package core

import (
	"fmt"
	"strings"
)

// Language is the coarse classification of a snippet body.
// Its string value is the tag written to disk.
type Language string

const (
	Go            Language = "Go"
	Rust          Language = "Rust"
	Python        Language = "Python"
	C             Language = "C"
	Bash          Language = "Bash"
	Cpp           Language = "C++"
	Java          Language = "Java"
	Miscellaneous Language = "Miscellaneous"
)

// Languages lists every known tag, Miscellaneous last.
var Languages = []Language{Go, Rust, Python, C, Bash, Cpp, Java, Miscellaneous}

var extensions = map[string]Language{
	"go":   Go,
	"rs":   Rust,
	"py":   Python,
	"c":    C,
	"sh":   Bash,
	"cpp":  Cpp,
	"java": Java,
}

// Classify maps a file-extension token to a Language.
// Matching is case-insensitive; unknown tokens (including "") yield Miscellaneous.
func Classify(token string) Language {
	if lang, ok := extensions[strings.ToLower(token)]; ok {
		return lang
	}
	return Miscellaneous
}

// Valid reports whether l is one of the fixed tags.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// UnmarshalText accepts only the exact on-disk tags.
func (l *Language) UnmarshalText(text []byte) error {
	lang := Language(text)
	if !lang.Valid() {
		return fmt.Errorf("unknown language tag %q", string(text))
	}
	*l = lang
	return nil
}
