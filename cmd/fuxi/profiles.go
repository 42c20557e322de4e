package fuxi

import (
	"github.com/arthur-debert/fuxi/pkg/commands/profiles"
	"github.com/arthur-debert/fuxi/pkg/commands/tracking"
	"github.com/arthur-debert/fuxi/pkg/config"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   MsgProfileShort,
		GroupID: "setup",
	}

	change := func(use, short string, fn func(*config.Config, string) (*types.ProfileChange, error)) *cobra.Command {
		return &cobra.Command{
			Use:               use + " <name>",
			Short:             short,
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: a.profileNames,
			RunE: func(cmd *cobra.Command, args []string) error {
				var result *types.ProfileChange
				err := a.mutate(func(cfg *config.Config) error {
					var err error
					result, err = fn(cfg, args[0])
					return err
				})
				if err != nil {
					return err
				}
				return a.render(cmd, result)
			},
		}
	}

	create := change("create", MsgProfileCreateShort, profiles.Create)
	create.ValidArgsFunction = nil

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   MsgProfileListShort,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				return a.render(cmd, profiles.List(cfg))
			},
		},
		create,
		change("switch", MsgProfileSwitchShort, profiles.Switch),
		change("delete", MsgProfileDeleteShort, profiles.Delete),
	)
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	var profile string
	cmd := &cobra.Command{
		Use:     "path",
		Short:   MsgPathShort,
		GroupID: "setup",
	}
	cmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", MsgFlagProfile)
	_ = cmd.RegisterFlagCompletionFunc("profile", a.profileNames)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgPathListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			result, err := tracking.List(cfg, profile)
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <path>...",
		Short: MsgPathAddShort,
		Long:  MsgPathAddLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.PathListResult
			err := a.mutate(func(cfg *config.Config) error {
				var err error
				result, err = tracking.Add(tracking.AddOptions{
					Config:     cfg,
					Profile:    profile,
					Paths:      args,
					FileSystem: a.deps.FileSystem,
				})
				return err
			})
			return renderPartial(a, cmd, result, err)
		},
	}

	var purge bool
	removeCmd := &cobra.Command{
		Use:     "remove <path>...",
		Aliases: []string{"rm"},
		Short:   MsgPathRemoveShort,
		Long:    MsgPathRemoveLong,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.PathListResult
			err := a.mutate(func(cfg *config.Config) error {
				var err error
				result, err = tracking.Remove(cmd.Context(), tracking.RemoveOptions{
					Config:     cfg,
					Profile:    profile,
					Paths:      args,
					Purge:      purge,
					Git:        a.git(cfg),
					FileSystem: a.deps.FileSystem,
				})
				return err
			})
			return renderPartial(a, cmd, result, err)
		},
	}
	removeCmd.Flags().BoolVar(&purge, "purge", false, MsgFlagPurge)

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

// profileNames completes profile names from the configuration.
func (a *app) profileNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cfg.ProfileNames(), cobra.ShellCompDirectiveNoFileComp
}
