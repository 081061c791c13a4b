// Package cli provides the interactive diary command-line client.
//
// It opens the configured store and runs a REPL over it:
//   - list, search and show entries
//   - write new entries and edit existing ones
//   - delete with confirmation
//   - export to and import from backup files
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
