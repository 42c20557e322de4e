// Package filesystem provides the types.FS implementations used by fuxi:
// the host filesystem, an afero-backed one for tests, and a few helpers
// built on top of the interface (atomic writes, tree walking).
package filesystem
