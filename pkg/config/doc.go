// Package config loads, edits and persists fuxi's configuration: the
// backup repository, the profiles and the paths each profile tracks.
//
// Configuration is layered with koanf: embedded defaults, then
// $XDG_CONFIG_HOME/fuxi/config.toml, then FUXI_* environment variables
// (nested keys use a double underscore, e.g. FUXI_GIT__NETWORK_TIMEOUT).
//
// A *Config is a plain value. Commands load it once through a Store, call
// its methods and hand it back to Store.Save, which replaces the file
// atomically. There is no locking: two fuxi processes editing the same
// config concurrently will lose one of the writes. The repository working
// tree is likewise shared without locks.
package config
