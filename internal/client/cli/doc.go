// Package cli provides the interactive GrowFlow terminal client.
//
// It wires configuration, the local session store, the REST client and a
// REPL. On start a saved session is restored, so a user stays logged in
// across runs until they log out or the server rejects the token.
//
// Commands: register, login, logout, whoami, list, show, add, done, undo,
// rename, delete, snapshot, help, exit. Each task is drawn with a plant
// glyph row showing its growth stage.
package cli
