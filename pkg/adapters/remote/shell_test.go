package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aretw0/snipperclipper/pkg/core"
)

func TestShell_Address(t *testing.T) {
	tests := []struct {
		name  string
		shell *Shell[core.ConfigData]
		want  string
	}{
		{"default port", NewShell[core.ConfigData]("example.org", 0, "ana", "/srv/snippets.json"), "ana@example.org:22:/srv/snippets.json"},
		{"no user", NewShell[core.ConfigData]("10.0.0.2", 2222, "", "snippets.json"), "10.0.0.2:2222:snippets.json"},
		{"ipv6", NewShell[core.ConfigData]("::1", 22, "", "s.json"), "[::1]:22:s.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shell.Address(); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShell_OperationsAreUnavailable(t *testing.T) {
	shell := NewShell[core.CollectionData]("example.org", 0, "ana", "/srv/snippets.json")
	ctx := context.Background()

	if _, err := shell.Load(ctx); !errors.Is(err, core.ErrNotImplemented) || !errors.Is(err, core.ErrConnection) {
		t.Errorf("Load error = %v, want ErrNotImplemented and ErrConnection", err)
	}

	data := core.CollectionData{Snippets: []core.Snippet{core.DefaultSnippet()}}
	got, err := shell.Update(ctx, data)
	if !errors.Is(err, core.ErrNotImplemented) {
		t.Errorf("Update error = %v, want ErrNotImplemented", err)
	}
	if len(got.Snippets) != 1 {
		t.Errorf("Update should hand back its input")
	}
}

func TestShell_CollectionFallsBackToDefaults(t *testing.T) {
	shell := NewShell[core.CollectionData]("example.org", 0, "", "/srv/snippets.json")
	coll := core.NewCollection(shell, slog.New(slog.NewTextHandler(io.Discard, nil)))

	outcome := coll.Load(context.Background())
	if !outcome.UsedDefaults {
		t.Fatal("expected defaults")
	}
	if !errors.Is(outcome.Err, core.ErrNotImplemented) {
		t.Errorf("outcome error = %v", outcome.Err)
	}
	if coll.Len() != 1 {
		t.Errorf("expected the template snippet only, got %d", coll.Len())
	}
}
