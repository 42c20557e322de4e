package types

import "time"

// ItemStatus is the outcome of one item in a batch operation.
type ItemStatus string

const (
	StatusSuccess ItemStatus = "success"
	StatusFailed  ItemStatus = "failed"
	StatusSkipped ItemStatus = "skipped"
	StatusPlanned ItemStatus = "planned"
)

// PathResult reports what happened to one path given to `path add` or
// `path remove`.
type PathResult struct {
	Path   string     `json:"path"`
	Kind   PathKind   `json:"kind,omitempty"`
	Status ItemStatus `json:"status"`
	Error  error      `json:"-"`
}

// Failed reports whether the item did not succeed.
func (r PathResult) Failed() bool {
	return r.Error != nil
}

// PathListResult is the result of `path add` / `path remove`.
type PathListResult struct {
	Profile string       `json:"profile"`
	Items   []PathResult `json:"items"`
}

// BackupItem reports the copy of one tracked path into the repository.
type BackupItem struct {
	Source   string     `json:"source"`
	RepoPath string     `json:"repoPath"`
	Kind     PathKind   `json:"kind"`
	Files    int        `json:"files"`
	Pruned   int        `json:"pruned,omitempty"`
	Status   ItemStatus `json:"status"`
	Error    error      `json:"-"`
}

// BackupResult is the result of `fuxi backup`.
type BackupResult struct {
	Profile         string       `json:"profile"`
	Items           []BackupItem `json:"items"`
	NothingToBackUp bool         `json:"nothingToBackUp"`
	Commit          string       `json:"commit,omitempty"`
	Message         string       `json:"message,omitempty"`
	Pushed          bool         `json:"pushed"`
	PushError       error        `json:"-"`
	Timestamp       time.Time    `json:"timestamp"`
}

// FailedItems returns the number of items that could not be copied.
func (r *BackupResult) FailedItems() int {
	n := 0
	for _, item := range r.Items {
		if item.Error != nil {
			n++
		}
	}
	return n
}

// SaveResult is the result of `fuxi save`.
type SaveResult struct {
	NothingToSave bool   `json:"nothingToSave"`
	Cancelled     bool   `json:"cancelled"`
	Commit        string `json:"commit,omitempty"`
	Message       string `json:"message,omitempty"`
	Pushed        bool   `json:"pushed"`
}

// ActionKind classifies what apply does to one destination.
type ActionKind string

const (
	ActionCreate    ActionKind = "create"
	ActionOverwrite ActionKind = "overwrite"
	ActionNoOp      ActionKind = "no-op"
)

// ApplyAction is one planned or executed write of a stored file to its
// source location.
type ApplyAction struct {
	RepoPath    string     `json:"repoPath"`
	Destination string     `json:"destination"`
	Kind        ActionKind `json:"action"`
	Executable  bool       `json:"executable,omitempty"`
	Status      ItemStatus `json:"status"`
	Error       error      `json:"-"`
}

// ApplyResult is the result of `fuxi apply`.
type ApplyResult struct {
	Profile   string        `json:"profile"`
	Reference string        `json:"reference"`
	Commit    string        `json:"commit"`
	DryRun    bool          `json:"dryRun"`
	Actions   []ApplyAction `json:"actions"`
}

// Count returns how many actions are of the given kind.
func (r *ApplyResult) Count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// BackupListEntry is one row of `fuxi list`.
type BackupListEntry struct {
	Backup
	IsLast bool `json:"isLast"`
}

// BackupListResult is the result of `fuxi list`.
type BackupListResult struct {
	Branch  string            `json:"branch"`
	Backups []BackupListEntry `json:"backups"`
}

// InitResult is the result of `fuxi init`.
type InitResult struct {
	Remote    string `json:"remote"`
	RemoteURL string `json:"remoteUrl"`
	LocalPath string `json:"localPath"`
	Branch    string `json:"branch"`
	// Created is false when LocalPath already held a git repository.
	Created bool `json:"created"`
	// Replaced is the local path of a previously configured repository.
	Replaced string `json:"replaced,omitempty"`
}

// ProfileSummary is one row of `fuxi profile list`.
type ProfileSummary struct {
	Name   string `json:"name"`
	Paths  int    `json:"paths"`
	Active bool   `json:"active"`
}

// ProfileListResult is the result of `fuxi profile list`.
type ProfileListResult struct {
	Active   string           `json:"active,omitempty"`
	Profiles []ProfileSummary `json:"profiles"`
}

// ProfileChange is the result of creating, switching or deleting a profile.
type ProfileChange struct {
	Profile string `json:"profile"`
	Action  string `json:"action"`
	// Active is the active profile after the change, empty when none.
	Active string `json:"active,omitempty"`
}

// TrackedPathList is the result of `fuxi path list`.
type TrackedPathList struct {
	Profile string        `json:"profile"`
	Paths   []TrackedPath `json:"paths"`
}

// ConfigDump is the result of `fuxi config`.
type ConfigDump struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	// Content is the file as stored, or the defaults when it is missing.
	Content string      `json:"-"`
	Config  interface{} `json:"config"`
}

// VersionInfo is the result of `fuxi version`.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}
