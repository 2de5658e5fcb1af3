// Package config handles application configuration and the persisted API token.
//
// Configuration is stored in ~/.growlens/config.json. The token lives in a small
// key-value state file, ~/.growlens/state.json, next to it.
package config
