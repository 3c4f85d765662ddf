package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// MemoryStorage implements core.Storage in memory.
// It deliberately does NOT implement core.Modifier to exercise the plain write-through path.
type MemoryStorage[T any] struct {
	mu      sync.Mutex
	data    T
	exists  bool
	loadErr error
	saveErr error
	saves   int
}

func (m *MemoryStorage[T]) Load(ctx context.Context) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.loadErr != nil {
		return zero, m.loadErr
	}
	if !m.exists {
		return zero, core.ErrConnection
	}
	return m.data, nil
}

func (m *MemoryStorage[T]) Update(ctx context.Context, data T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return data, m.saveErr
	}
	m.data = data
	m.exists = true
	m.saves++
	return data, nil
}

func newService(t *testing.T) (*core.Service, *MemoryStorage[core.CollectionData], *MemoryStorage[core.ConfigData]) {
	t.Helper()
	snips := &MemoryStorage[core.CollectionData]{}
	cfg := &MemoryStorage[core.ConfigData]{}
	svc := core.NewService(core.NewCollection(snips, nil), core.NewConfig(cfg, nil), nil)
	svc.Load(context.TODO())
	return svc, snips, cfg
}

func TestService_AddAndQuery(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.TODO()

	// 1. Add
	helper, err := svc.Add(ctx, "utils/helper.go", "package utils")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add(ctx, "deploy.sh", "#!/bin/sh"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("expected write-through save per add, got %d saves", store.saves)
	}

	// 2. Get
	got, ok := svc.Get("helper")
	if !ok {
		t.Fatal("expected to find helper")
	}
	if got.ID != helper.ID {
		t.Errorf("Get returned %s, want %s", got.ID, helper.ID)
	}

	// 3. ListByLanguage
	bash, err := svc.ListByLanguage("sh")
	if err != nil {
		t.Fatalf("ListByLanguage failed: %v", err)
	}
	if len(bash) != 1 || bash[0].Name != "deploy" {
		t.Errorf("unexpected bash snippets: %+v", bash)
	}

	// 4. Persisted state mirrors memory, template included
	if len(store.data.Snippets) != 3 {
		t.Errorf("expected 3 persisted snippets, got %d", len(store.data.Snippets))
	}
}

func TestService_AddAcceptsDegenerateSpecifiers(t *testing.T) {
	svc, _, _ := newService(t)

	for _, specifier := range []string{"", "/", "."} {
		got, err := svc.Add(context.TODO(), specifier, "body")
		if err != nil {
			t.Errorf("Add(%q) failed: %v", specifier, err)
			continue
		}
		if got.Name != "" || got.Folder != "" || got.Language != core.Miscellaneous {
			t.Errorf("Add(%q) = name %q, folder %q, language %v; want empty, empty, Miscellaneous",
				specifier, got.Name, got.Folder, got.Language)
		}
	}
}

func TestService_LoadFallsBackToDefaults(t *testing.T) {
	svc, _, _ := newService(t)

	outcomes := svc.Outcomes()
	for _, name := range []string{"config", "snippets"} {
		o := outcomes[name]
		if !o.UsedDefaults {
			t.Errorf("%s: expected defaults on first run", name)
		}
		if !errors.Is(o.Err, core.ErrConnection) {
			t.Errorf("%s: expected connection error cause, got %v", name, o.Err)
		}
	}
	if svc.Theme() != core.DefaultTheme {
		t.Errorf("expected default theme, got %q", svc.Theme())
	}
	all := svc.ListAll()
	if len(all) != 1 || all[0].Name != "New Snippet" || all[0].Body != "Lorem Ipsum" {
		t.Errorf("expected only the template snippet, got %+v", all)
	}
}

func TestService_SetTheme(t *testing.T) {
	svc, _, cfg := newService(t)
	ctx := context.TODO()

	if err := svc.SetTheme(ctx, "solarized"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if cfg.data.Theme != "solarized" {
		t.Errorf("persisted theme = %q", cfg.data.Theme)
	}

	if err := svc.SetTheme(ctx, ""); err == nil {
		t.Error("expected error for empty theme")
	}

	// Reload from the same storage
	reloaded := core.NewConfig(cfg, nil)
	if o := reloaded.Load(ctx); o.UsedDefaults {
		t.Fatalf("unexpected fallback: %v", o.Err)
	}
	if reloaded.Theme() != "solarized" {
		t.Errorf("reloaded theme = %q", reloaded.Theme())
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc, _, _ := newService(t)
	if _, err := svc.Watch(context.TODO()); err == nil {
		t.Fatal("expected error for non-watchable storage")
	}
}

func TestService_State(t *testing.T) {
	svc, _, _ := newService(t)
	_, _ = svc.Add(context.TODO(), "a.go", "")

	state, ok := svc.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", svc.State())
	}
	if state.Snippets.Size != 2 || state.Snippets.Languages["Go"] != 1 {
		t.Errorf("unexpected state: %+v", state)
	}
	if want := []string{"config", "snippets"}; !equalStrings(state.UsedDefaults, want) {
		t.Errorf("UsedDefaults = %v, want %v", state.UsedDefaults, want)
	}
	if svc.StorageState() != nil {
		t.Error("memory storage is not introspectable")
	}
}
