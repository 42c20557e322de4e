package fuxi

import (
	"fmt"

	"github.com/arthur-debert/fuxi/pkg/commands/apply"
	"github.com/arthur-debert/fuxi/pkg/commands/backup"
	"github.com/arthur-debert/fuxi/pkg/commands/initialize"
	"github.com/arthur-debert/fuxi/pkg/commands/list"
	"github.com/arthur-debert/fuxi/pkg/commands/save"
	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/paths"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "init <repo> <path>",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "setup",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := a.deps.Confirmer.Confirm(fmt.Sprintf(MsgInitConfirm, paths.ExpandHome(args[1])), false)
				if err != nil {
					return err
				}
				if !ok {
					return a.message(cmd, MsgInitCancelled)
				}
			}

			var result *types.InitResult
			err := a.mutate(func(cfg *config.Config) error {
				var err error
				result, err = initialize.Initialize(cmd.Context(), initialize.Options{
					Config:    cfg,
					Remote:    args[0],
					LocalPath: args[1],
					NewGit: func(dir string) git.Client {
						return a.deps.NewGit(dir, cfg.Git.NetworkTimeout.Std())
					},
					FileSystem: a.deps.FileSystem,
				})
				return err
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	var opts struct {
		message string
		push    bool
		prune   bool
	}
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgBackupShort,
		Long:    MsgBackupLong,
		Example: MsgBackupExample,
		GroupID: "backup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.BackupResult
			err := a.mutate(func(cfg *config.Config) error {
				var err error
				result, err = backup.Backup(cmd.Context(), backup.Options{
					Config:     cfg,
					Message:    opts.message,
					Push:       opts.push,
					Prune:      opts.prune,
					Git:        a.git(cfg),
					FileSystem: a.deps.FileSystem,
					Executor:   a.deps.Executor,
					Now:        a.deps.Now,
				})
				return err
			})
			return renderPartial(a, cmd, result, err)
		},
	}
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", MsgFlagMessage)
	cmd.Flags().BoolVar(&opts.push, "push", false, MsgFlagPush)
	cmd.Flags().BoolVar(&opts.prune, "prune", false, MsgFlagPrune)
	return cmd
}

func newSaveCmd(a *app) *cobra.Command {
	var (
		message string
		force   bool
	)
	cmd := &cobra.Command{
		Use:     "save",
		Short:   MsgSaveShort,
		Long:    MsgSaveLong,
		GroupID: "backup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			result, err := save.Save(cmd.Context(), save.Options{
				Config:    cfg,
				Message:   message,
				Force:     force,
				Git:       a.git(cfg),
				Confirmer: a.deps.Confirmer,
			})
			return renderPartial(a, cmd, result, err)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "backup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			result, err := list.List(cmd.Context(), list.Options{Config: cfg, Git: a.git(cfg)})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newApplyCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "apply <ref>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "backup",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.ApplyResult
			err := a.mutate(func(cfg *config.Config) error {
				var err error
				result, err = apply.Apply(cmd.Context(), apply.Options{
					Config:     cfg,
					Reference:  args[0],
					DryRun:     dryRun,
					Git:        a.git(cfg),
					FileSystem: a.deps.FileSystem,
					Executor:   a.deps.Executor,
				})
				return err
			})
			return renderPartial(a, cmd, result, err)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.Flags().MarkHidden("dry-run")
	return cmd
}
