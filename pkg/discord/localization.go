package discord

import (
	"github.com/bwmarrin/discordgo"

	"hytalei18n/pkg/i18n"
)

// Locales lists the Discord client locales a catalog can be exported to.
var Locales = []discordgo.Locale{
	discordgo.EnglishUS,
	discordgo.EnglishGB,
	discordgo.Bulgarian,
	discordgo.ChineseCN,
	discordgo.ChineseTW,
	discordgo.Croatian,
	discordgo.Czech,
	discordgo.Danish,
	discordgo.Dutch,
	discordgo.Finnish,
	discordgo.French,
	discordgo.German,
	discordgo.Greek,
	discordgo.Hindi,
	discordgo.Hungarian,
	discordgo.Italian,
	discordgo.Japanese,
	discordgo.Korean,
	discordgo.Lithuanian,
	discordgo.Norwegian,
	discordgo.Polish,
	discordgo.PortugueseBR,
	discordgo.Romanian,
	discordgo.Russian,
	discordgo.SpanishES,
	discordgo.Swedish,
	discordgo.Thai,
	discordgo.Turkish,
	discordgo.Ukrainian,
	discordgo.Vietnamese,
}

// LocaleFor returns the catalog locale for a Discord locale ("" when unknown).
func LocaleFor(l discordgo.Locale) string {
	locale, err := i18n.NormalizeLocale(string(l))
	if err != nil {
		return ""
	}
	return locale
}

// DiscordLocale returns the Discord locale matching a catalog locale exactly.
func DiscordLocale(locale string) (discordgo.Locale, bool) {
	normalized, err := i18n.NormalizeLocale(locale)
	if err != nil || normalized == "" {
		return "", false
	}
	for _, l := range Locales {
		if LocaleFor(l) == normalized {
			return l, true
		}
	}
	return "", false
}

// InteractionLocale picks the user's locale, then the guild's, then fallback.
func InteractionLocale(i *discordgo.InteractionCreate, fallback string) string {
	if i == nil || i.Interaction == nil {
		return fallback
	}
	if locale := LocaleFor(i.Locale); locale != "" {
		return locale
	}
	if i.GuildLocale != nil {
		if locale := LocaleFor(*i.GuildLocale); locale != "" {
			return locale
		}
	}
	return fallback
}

// Localizations collects the translations of key for every Discord locale that
// has an exact catalog entry. It returns nil when there are none.
func Localizations(cat *i18n.Catalog, key string) *map[discordgo.Locale]string {
	out := map[discordgo.Locale]string{}
	for _, l := range Locales {
		if tmpl, ok := cat.Lookup(LocaleFor(l), key); ok {
			out[l] = string(tmpl)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &out
}

// LocalizeCommand fills the name/description of cmd for the default locale and
// attaches per-locale localizations. Empty keys leave the field untouched.
func LocalizeCommand(loc *i18n.Localizer, cmd *discordgo.ApplicationCommand, nameKey, descriptionKey string) {
	if cmd == nil {
		return
	}
	cat := loc.Catalog()
	def := loc.Resolver().DefaultLocale()
	if nameKey != "" {
		cmd.Name = loc.GetOrDefault(nameKey, def, cmd.Name)
		cmd.NameLocalizations = Localizations(cat, nameKey)
	}
	if descriptionKey != "" {
		cmd.Description = loc.GetOrDefault(descriptionKey, def, cmd.Description)
		cmd.DescriptionLocalizations = Localizations(cat, descriptionKey)
	}
}
