// Package cli is the interactive MovieDeck command-line client.
//
// NewApp wires configuration, the local preferences store, the gRPC client
// and the facades. App.Run seeds the catalog on first launch, starts a
// connectivity watcher and blocks in the REPL until the user exits.
//
// Every screen (catalog, favorites, search, detail, profile, ...) owns a
// state.Container that drives one request at a time. List screens render
// through a listdiff.Adapter, so repeating a command prints only the rows
// that changed. Errors are shown by Kind, never by raw server text.
package cli
