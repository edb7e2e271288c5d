// Package possdk is a Go client for the SmashPOS session service.
//
// It provides an SDKClient for talking to the HTTP API (login, who-am-I,
// logout and the admin user endpoints) and a SessionStore that caches the
// authenticated user across calls, persisting it through a pluggable
// Storage backend so a restarted client keeps its session.
package possdk
