// Package cli provides the interactive DramaHub command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// Typical flow: log in or sign up, then manage the favorites and watchlist
// sets, fetch catalog details and ask for recommendations. A background
// watcher probes the server and shows whether it is reachable.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
