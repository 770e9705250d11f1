// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the frontdesk home directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - SessionStore: TOML-based login session persistence
//   - Watcher: fsnotify-based change notification for the config file
package file
