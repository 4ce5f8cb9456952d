package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	pkgdiscord "hytalei18n/pkg/discord"
	"hytalei18n/pkg/i18n"
)

const (
	commandTranslate = "translate"
	commandStatus    = "i18n-status"

	optionKey    = "key"
	optionArgs   = "args"
	optionLocale = "locale"
)

// badArgsError is reported to users as "errors.bad_args".
type badArgsError struct{ pair string }

func (e *badArgsError) Error() string { return "invalid argument " + e.pair + ", expected name=value" }
func (e *badArgsError) Code() string  { return "bad_args" }

// Commands returns the slash commands with their localized names and descriptions.
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	translate := &discordgo.ApplicationCommand{
		Name: commandTranslate,
		Options: []*discordgo.ApplicationCommandOption{
			h.stringOption(optionKey, "opt.key.description", true),
			h.stringOption(optionArgs, "opt.args.description", false),
			h.stringOption(optionLocale, "opt.locale.description", false),
		},
	}
	pkgdiscord.LocalizeCommand(h.ui, translate, "", "cmd.translate.description")

	status := &discordgo.ApplicationCommand{Name: commandStatus}
	pkgdiscord.LocalizeCommand(h.ui, status, "", "cmd.status.description")

	// Routing uses the default names; localized names only change what users see.
	translate.NameLocalizations = pkgdiscord.Localizations(h.ui.Catalog(), "cmd.translate.name")
	status.NameLocalizations = pkgdiscord.Localizations(h.ui.Catalog(), "cmd.status.name")

	return []*discordgo.ApplicationCommand{translate, status}
}

func (h *Handler) stringOption(name, descriptionKey string, required bool) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: h.ui.T(i18n.DefaultLocale, descriptionKey, nil),
		Required:    required,
	}
	if l := pkgdiscord.Localizations(h.ui.Catalog(), descriptionKey); l != nil {
		opt.DescriptionLocalizations = *l
	}
	return opt
}

// HandleTranslate renders the requested key in the option locale, or the user's.
func (h *Handler) HandleTranslate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := pkgdiscord.InteractionLocale(i, h.baseLocale)
	options := map[string]string{}
	for _, opt := range i.ApplicationCommandData().Options {
		options[opt.Name] = opt.StringValue()
	}
	respondEphemeral(s, i.Interaction, h.translate(locale, options))
}

// translate returns the rendered message, or a localized error for the user.
func (h *Handler) translate(userLocale string, options map[string]string) string {
	target := userLocale
	if l := strings.TrimSpace(options[optionLocale]); l != "" {
		target = l
	}
	args, err := parseOptionArgs(options[optionArgs])
	if err != nil {
		return pkgdiscord.ErrorMessage(h.ui, userLocale, err)
	}
	out, err := h.service.Render(target, options[optionKey], args)
	if err != nil {
		return pkgdiscord.ErrorMessage(h.ui, userLocale, err)
	}
	return out
}

// parseOptionArgs parses "name=Ann, count=3".
func parseOptionArgs(raw string) (i18n.Args, error) {
	args := i18n.Args{}
	for _, pair := range strings.Split(raw, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &badArgsError{pair: strings.TrimSpace(pair)}
		}
		args[name] = strings.TrimSpace(value)
	}
	return args, nil
}
