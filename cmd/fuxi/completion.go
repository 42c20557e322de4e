package fuxi

import (
	"io"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/spf13/cobra"
)

// GenerateCompletion writes the completion script for shell.
func GenerateCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, "unsupported shell %q (use bash, zsh, fish or powershell)", shell)
}
