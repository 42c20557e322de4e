package fuxi

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort          = "Back up and restore dotfiles with git"
	MsgVersionShort       = "Print version information"
	MsgConfigShort        = "Show the configuration file"
	MsgInitShort          = "Set up the backup repository"
	MsgProfileShort       = "Manage profiles"
	MsgProfileListShort   = "List profiles"
	MsgProfileCreateShort = "Create a profile"
	MsgProfileSwitchShort = "Make a profile the active one"
	MsgProfileDeleteShort = "Delete a profile"
	MsgPathShort          = "Manage tracked paths"
	MsgPathListShort      = "List the paths a profile tracks"
	MsgPathAddShort       = "Track files or directories"
	MsgPathRemoveShort    = "Stop tracking paths"
	MsgBackupShort        = "Copy tracked paths into the repository and commit"
	MsgSaveShort          = "Commit and push pending repository changes"
	MsgListShort          = "List backups"
	MsgListLong           = "List the backups in the repository, newest first."
	MsgApplyShort         = "Restore files from a backup"
	MsgCompletionShort    = "Generate shell completion script"

	MsgInitConfirm   = "This will initialize a git repository at %s. Continue?"
	MsgInitCancelled = "Initialization cancelled."

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagRaw     = "Print only the file content"
	MsgFlagYes     = "Do not ask for confirmation"
	MsgFlagProfile = "Profile to use instead of the active one"
	MsgFlagPurge   = "Also delete the stored copies from the repository"
	MsgFlagMessage = "Commit message"
	MsgFlagPush    = "Push the backup to origin"
	MsgFlagPrune   = "Remove stored files whose source was deleted"
	MsgFlagForce   = "Save without asking for confirmation"
	MsgFlagDryRun  = "Show what would change without writing anything"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/backup-long.txt
	msgBackupLongRaw string
	MsgBackupLong    = strings.TrimSpace(msgBackupLongRaw)

	//go:embed msgs/backup-example.txt
	msgBackupExampleRaw string
	MsgBackupExample    = strings.TrimRight(msgBackupExampleRaw, "\n")

	//go:embed msgs/save-long.txt
	msgSaveLongRaw string
	MsgSaveLong    = strings.TrimSpace(msgSaveLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/path-add-long.txt
	msgPathAddLongRaw string
	MsgPathAddLong    = strings.TrimSpace(msgPathAddLongRaw)

	//go:embed msgs/path-remove-long.txt
	msgPathRemoveLongRaw string
	MsgPathRemoveLong    = strings.TrimSpace(msgPathRemoveLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
