package types

import "time"

// ShortHashLength is the prefix length used when showing backup ids.
const ShortHashLength = 7

// Backup is a commit in the backup repository.
type Backup struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ShortHash returns the abbreviated hash used in listings.
func (b Backup) ShortHash() string {
	if len(b.Hash) <= ShortHashLength {
		return b.Hash
	}
	return b.Hash[:ShortHashLength]
}
