package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hytalei18n/internal/adapters/discord"
	"hytalei18n/internal/infrastructure/database"
	"hytalei18n/pkg/i18n"
)

type renderOptions struct {
	locale string
	key    string
	args   []string
	strict bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render [key]",
	Short: msg(MsgCmdRenderShort, nil),
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderOpts.key == "" && len(args) > 0 {
			renderOpts.key = args[0]
		}
		return runRender(cmd, renderOpts)
	},
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	values, err := parseArgs(opts.args)
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.service.Reload(cmd.Context()); err != nil {
		return err
	}

	out, err := a.service.Render(opts.locale, opts.key, values)
	if errors.Is(err, i18n.ErrKeyNotFound) && !opts.strict {
		out, err = opts.key, nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// parseArgs turns name=value pairs into template arguments.
func parseArgs(pairs []string) (i18n.Args, error) {
	args := make(i18n.Args, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.New(msg(MsgErrBadArg, i18n.Args{"arg": pair}))
		}
		args[strings.TrimSpace(name)] = value
	}
	return args, nil
}

var checkBase string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: msg(MsgCmdCheckShort, nil),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		base := checkBase
		if base == "" {
			base = cfg.DefaultLocale
		}
		mismatches, err := a.service.Check(cmd.Context(), base)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range mismatches {
			fmt.Fprintln(out, m.String())
		}
		if len(mismatches) > 0 {
			return errors.New(msg(MsgCheckProblems, i18n.Args{"count": len(mismatches)}))
		}
		if err := a.service.Reload(cmd.Context()); err != nil {
			return err
		}
		cat := a.service.Localizer().Catalog()
		fmt.Fprintln(out, msg(MsgCheckOK, i18n.Args{"count": cat.Len(), "locales": len(cat.Locales())}))
		return nil
	},
}

type statusOptions struct {
	base string
	json bool
}

var statusOpts statusOptions

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: msg(MsgCmdStatusShort, nil),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.service.Reload(cmd.Context()); err != nil {
			return err
		}

		base := statusOpts.base
		if base == "" {
			base = cfg.DefaultLocale
		}
		report, err := a.service.Status(base)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if statusOpts.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		fmt.Fprint(out, report.Markdown())
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: msg(MsgCmdMigrateShort, nil),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabase(cfg); err != nil {
			return err
		}
		return database.RunMigrations(cfg.DatabaseURL)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: msg(MsgCmdImportShort, nil),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabase(cfg); err != nil {
			return err
		}
		files, err := newApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		resources, err := files.service.Gather(cmd.Context())
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()
		n, err := a.repo.Import(cmd.Context(), resources)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg(MsgImportDone, i18n.Args{"count": n}))
		return nil
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: msg(MsgCmdBotShort, nil),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DiscordToken == "" {
			return errors.New(msg(MsgErrToken, nil))
		}
		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.service.Reload(cmd.Context()); err != nil {
			return err
		}
		bot, err := discord.NewBot(cfg, a.service)
		if err != nil {
			return err
		}
		return bot.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd, checkCmd, statusCmd, migrateCmd, importCmd, botCmd)

	renderCmd.Flags().StringVar(&renderOpts.locale, "locale", "", msg(MsgFlagLocale, nil))
	renderCmd.Flags().StringVar(&renderOpts.key, "key", "", msg(MsgFlagKey, nil))
	renderCmd.Flags().StringArrayVar(&renderOpts.args, "arg", nil, msg(MsgFlagArg, nil))
	renderCmd.Flags().BoolVar(&renderOpts.strict, "strict", false, msg(MsgFlagStrict, nil))

	checkCmd.Flags().StringVar(&checkBase, "base", "", msg(MsgFlagBase, nil))

	statusCmd.Flags().StringVar(&statusOpts.base, "base", "", msg(MsgFlagBase, nil))
	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false, msg(MsgFlagJSON, nil))
}
