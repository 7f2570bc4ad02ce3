// Package app contains the core application logic. It wires configuration,
// logging, storage and the layout engine together and exposes the layout
// workflows used by the CLI, decoupled from any specific entrypoint.
package app
