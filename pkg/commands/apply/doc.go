// Package apply restores files from a backup commit to their original
// locations.
//
// Every file stored under the active profile is classified as create,
// overwrite or no-op by comparing content fingerprints. A dry run stops
// after planning and returns the same ordered actions as a real run.
// Existing files keep their permissions except for the executable bit,
// which follows the mode recorded in git.
package apply
