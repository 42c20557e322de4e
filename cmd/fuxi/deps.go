package fuxi

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/synthfs"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/arthur-debert/fuxi/pkg/ui"
	"github.com/arthur-debert/fuxi/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

// Deps are the collaborators commands run against. Tests replace them;
// the zero value of each field means the real implementation.
type Deps struct {
	Store      *config.Store
	FileSystem types.FS
	Executor   synthfs.Executor
	NewGit     func(dir string, networkTimeout time.Duration) git.Client
	Confirmer  confirmations.Confirmer
	Now        func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Store == nil {
		d.Store = config.DefaultStore()
	}
	if d.FileSystem == nil {
		d.FileSystem = filesystem.NewOS()
	}
	if d.Executor == nil {
		d.Executor = synthfs.New()
	}
	if d.NewGit == nil {
		d.NewGit = func(dir string, timeout time.Duration) git.Client { return git.New(dir, timeout) }
	}
	if d.Confirmer == nil {
		d.Confirmer = confirmations.NewPrompt()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// app carries the state shared by the commands of one root command.
type app struct {
	deps   Deps
	format string
}

// loadConfig returns the configuration, defaults when no file exists.
func (a *app) loadConfig() (*config.Config, error) {
	return a.deps.Store.LoadOrDefault()
}

// mutate loads the configuration, runs fn and writes the configuration
// back once when fn changed it, whether or not fn failed.
func (a *app) mutate(fn func(cfg *config.Config) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	before, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	runErr := fn(cfg)

	after, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		if err := a.deps.Store.Save(cfg); err != nil {
			return err
		}
	}
	return runErr
}

func (a *app) git(cfg *config.Config) git.Client {
	dir := ""
	if cfg.Repository != nil {
		dir = cfg.Repository.LocalPath
	}
	return a.deps.NewGit(dir, cfg.Git.NetworkTimeout.Std())
}

func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// render writes result to the command's output.
func (a *app) render(cmd *cobra.Command, result interface{}) error {
	r, err := a.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

func (a *app) message(cmd *cobra.Command, msg string) error {
	r, err := a.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderMessage(msg)
}

// ReportError renders err on stderr in the format selected on cmd.
func ReportError(cmd *cobra.Command, err error) {
	format, _ := cmd.PersistentFlags().GetString("format")
	parsed, perr := ui.ParseFormat(format)
	if perr != nil {
		parsed = ui.FormatAuto
	}
	r, rerr := ui.NewRenderer(parsed, os.Stderr)
	if rerr != nil {
		return
	}
	_ = r.RenderError(err)
}

// renderPartial renders whatever result a command produced, then returns
// its error. Commands report per item failures this way.
func renderPartial[T any](a *app, cmd *cobra.Command, result *T, err error) error {
	if result != nil {
		if rerr := a.render(cmd, result); rerr != nil {
			return rerr
		}
	}
	return err
}

func configDump(a *app) (*types.ConfigDump, error) {
	store := a.deps.Store
	cfg, err := store.Load()
	exists := err == nil
	if err != nil && !errors.IsErrorCode(err, errors.ErrConfigMissing) {
		return nil, err
	}

	dump := &types.ConfigDump{Path: store.Path(), Exists: exists}
	if exists {
		data, err := a.deps.FileSystem.ReadFile(store.Path())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigCorrupt, "cannot read %s", store.Path())
		}
		dump.Content = string(data)
		dump.Config = cfg
		return dump, nil
	}

	dump.Content = config.DefaultsContent()
	if dump.Config, err = config.Defaults(); err != nil {
		return nil, err
	}
	return dump, nil
}
