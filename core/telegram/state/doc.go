// Package state keeps per-user conversation sessions in memory and dispatches
// incoming updates to the handler bound to the user's current state.
//
// Sessions are never persisted; a restart drops every conversation.
package state
