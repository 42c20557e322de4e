// Package types holds the values shared between fuxi's configuration,
// its git adapter and the backup/apply engines: the filesystem interface,
// tracked path kinds, backups and per-item results.
package types
