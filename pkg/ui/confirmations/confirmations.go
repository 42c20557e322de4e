// Package confirmations asks the user to approve operations that change
// shared state, such as pushing repository edits.
package confirmations

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	fuxierrors "github.com/arthur-debert/fuxi/pkg/errors"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(message string, defaultYes bool) (bool, error)
}

// Prompt asks on the terminal through survey.
type Prompt struct {
	options []survey.AskOpt
}

// NewPrompt returns a terminal confirmer. Options are passed to
// survey.AskOne, which lets tests supply their own stdio.
func NewPrompt(opts ...survey.AskOpt) *Prompt {
	return &Prompt{options: opts}
}

// Confirm shows message and waits for an answer. Ctrl-C counts as no.
func (p *Prompt) Confirm(message string, defaultYes bool) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultYes,
	}
	if err := survey.AskOne(prompt, &confirmed, p.options...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, fuxierrors.Wrap(err, fuxierrors.ErrInternal, "cannot read confirmation")
	}
	return confirmed, nil
}

// Always answers every question with the same value. It backs `-y` and
// non-interactive runs.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string, bool) (bool, error) {
	return bool(a), nil
}
