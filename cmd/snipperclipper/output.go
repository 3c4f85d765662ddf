package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/snipperclipper"
)

var jsonOutput bool

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printSnippets writes one line per snippet, or a JSON array with --json.
func printSnippets(w io.Writer, snippets []snipperclipper.Snippet) error {
	if jsonOutput {
		if snippets == nil {
			snippets = []snipperclipper.Snippet{}
		}
		return printJSON(w, snippets)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range snippets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Path(), s.Language, s.ID)
	}
	return tw.Flush()
}
