// Package synthfs runs fuxi's filesystem writes through the synthfs
// operation pipeline. Work is grouped in batches, one per tracked path or
// restored file, and each batch runs on its own so a failing batch does
// not stop the others.
package synthfs
