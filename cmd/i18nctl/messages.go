package main

import (
	"embed"
	"log"
	"os"
	"strings"

	"hytalei18n/pkg/i18n"
	"hytalei18n/pkg/i18n/resource"
)

//go:embed lang/*.lang
var langFS embed.FS

const (
	MsgCliShort          = "cli.short"
	MsgCliLong           = "cli.long"
	MsgFlagDir           = "flag.dir"
	MsgFlagPattern       = "flag.pattern"
	MsgFlagDefaultLocale = "flag.default_locale"
	MsgFlagDatabaseURL   = "flag.database_url"
	MsgCmdRenderShort    = "cmd.render.short"
	MsgFlagLocale        = "flag.locale"
	MsgFlagKey           = "flag.key"
	MsgFlagArg           = "flag.arg"
	MsgFlagStrict        = "flag.strict"
	MsgCmdCheckShort     = "cmd.check.short"
	MsgFlagBase          = "flag.base"
	MsgCmdStatusShort    = "cmd.status.short"
	MsgFlagJSON          = "flag.json"
	MsgCmdMigrateShort   = "cmd.migrate.short"
	MsgCmdImportShort    = "cmd.import.short"
	MsgCmdBotShort       = "cmd.bot.short"
	MsgCheckOK           = "check.ok"
	MsgCheckProblems     = "check.problems"
	MsgImportDone        = "import.done"
	MsgErrDatabase       = "err.database_required"
	MsgErrBadArg         = "err.bad_arg"
	MsgErrToken          = "err.token_required"
)

var (
	cliMessages = mustLoadCLIMessages()
	cliLocale   = detectCLILocale()
)

func mustLoadCLIMessages() *i18n.Localizer {
	resources, err := resource.LoadPatterns(langFS, "lang/%s.lang")
	if err != nil {
		log.Fatalf("i18nctl: load messages: %v", err)
	}
	cat, err := i18n.Load(resources...)
	if err != nil {
		log.Fatalf("i18nctl: load messages: %v", err)
	}
	resolver, err := i18n.NewResolver(i18n.DefaultLocale)
	if err != nil {
		log.Fatalf("i18nctl: load messages: %v", err)
	}
	return i18n.New(resolver, cat)
}

// detectCLILocale reads I18N_CLI_LOCALE, then LANG ("fr_FR.UTF-8" -> "fr-FR").
func detectCLILocale() string {
	for _, name := range []string{"I18N_CLI_LOCALE", "LC_ALL", "LANG"} {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		value, _, _ = strings.Cut(value, ".")
		value, _, _ = strings.Cut(value, "@")
		if locale, err := i18n.NormalizeLocale(value); err == nil && locale != "" {
			return locale
		}
	}
	return i18n.DefaultLocale
}

// msg renders a CLI message in the user's locale.
func msg(key string, args i18n.Args) string {
	return cliMessages.T(cliLocale, key, args)
}
