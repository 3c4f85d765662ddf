// Package snipperclipper is the composition root of a personal code-snippet
// manager.
//
// It wires the snippet collection and the user configuration (pkg/core) to a
// storage backend chosen at start-up: a JSON or YAML file (pkg/adapters/fs),
// a local SQLite database (pkg/adapters/sqlite) or a remote shell descriptor
// (pkg/adapters/remote, declared but not implemented).
//
// Features:
//
//   - **Compound names**: "folder/name.ext" is parsed into a folder, a name and
//     a language classified from the extension.
//   - **Write-through**: every Add is persisted before it returns, and
//     concurrent writers never drop each other's snippets.
//   - **Forgiving start-up**: unreadable or missing state falls back to
//     defaults and is reported through Service.Outcomes instead of failing.
//   - **Dev sandbox**: `go run` and `go test` never touch the real data directory.
//
// Usage:
//
//	app, err := snipperclipper.New(ctx,
//		snipperclipper.WithBackend(snipperclipper.BackendSQLite),
//		snipperclipper.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	snip, err := app.Add(ctx, "http/client.go", body)
//	matches := app.Find("client")
package snipperclipper
