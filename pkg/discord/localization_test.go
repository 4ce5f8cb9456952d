package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"hytalei18n/pkg/i18n"
)

func testLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	cat, err := i18n.Load(
		i18n.Resource{Locale: "en-US", Entries: []i18n.Entry{
			{Key: "cmd.party.name", Value: "party"},
			{Key: "cmd.party.description", Value: "Create a party"},
			{Key: "errors.key_not_found", Value: "Unknown message."},
			{Key: "errors.unknown", Value: "Something went wrong."},
		}},
		i18n.Resource{Locale: "fr", Entries: []i18n.Entry{
			{Key: "cmd.party.name", Value: "sortie"},
			{Key: "cmd.party.description", Value: "Créer une sortie"},
			{Key: "errors.unknown", Value: "Une erreur est survenue."},
		}},
		i18n.Resource{Locale: "pt-BR", Entries: []i18n.Entry{{Key: "cmd.party.name", Value: "festa"}}},
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := i18n.NewResolver("en-US")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return i18n.New(r, cat)
}

func TestLocaleMapping(t *testing.T) {
	t.Parallel()

	if got := LocaleFor(discordgo.PortugueseBR); got != "pt-BR" {
		t.Fatalf("LocaleFor = %q, want pt-BR", got)
	}
	if got := LocaleFor(discordgo.Unknown); got != "" {
		t.Fatalf("LocaleFor = %q, want empty", got)
	}
	if got, ok := DiscordLocale("sv_se"); !ok || got != discordgo.Swedish {
		t.Fatalf("DiscordLocale = %q, %v", got, ok)
	}
	if _, ok := DiscordLocale("en"); ok {
		t.Fatal("expected no exact Discord locale for en")
	}
}

func TestInteractionLocale(t *testing.T) {
	t.Parallel()

	guild := discordgo.German
	tests := []struct {
		name string
		in   *discordgo.InteractionCreate
		want string
	}{
		{name: "nil", in: nil, want: "en-US"},
		{name: "user", in: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Locale: discordgo.French, GuildLocale: &guild}}, want: "fr"},
		{name: "guild", in: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{GuildLocale: &guild}}, want: "de"},
		{name: "fallback", in: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}, want: "en-US"},
	}
	for _, tt := range tests {
		if got := InteractionLocale(tt.in, "en-US"); got != tt.want {
			t.Errorf("%s: locale = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLocalizeCommand(t *testing.T) {
	t.Parallel()

	loc := testLocalizer(t)
	cmd := &discordgo.ApplicationCommand{Name: "fallback", Description: "fallback"}
	LocalizeCommand(loc, cmd, "cmd.party.name", "cmd.party.description")

	if cmd.Name != "party" || cmd.Description != "Create a party" {
		t.Fatalf("command = %q / %q", cmd.Name, cmd.Description)
	}
	if cmd.NameLocalizations == nil {
		t.Fatal("expected name localizations")
	}
	names := *cmd.NameLocalizations
	if names[discordgo.French] != "sortie" || names[discordgo.PortugueseBR] != "festa" || names[discordgo.EnglishUS] != "party" {
		t.Fatalf("name localizations = %v", names)
	}
	if _, ok := names[discordgo.EnglishGB]; ok {
		t.Fatal("expected en-GB omitted without an exact entry")
	}
	if got := len(*cmd.DescriptionLocalizations); got != 2 {
		t.Fatalf("description localizations = %d, want 2", got)
	}

	if Localizations(loc.Catalog(), "missing") != nil {
		t.Fatal("expected nil localizations for missing key")
	}
}

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() string  { return "not_organizer" }

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	loc := testLocalizer(t)
	_, notFound := loc.Resolve("fr", "nope")

	if got := ErrorMessage(loc, "fr", notFound); got != "Unknown message." {
		t.Fatalf("message = %q", got)
	}
	if got := ErrorMessage(loc, "fr", codedError{}); got != "Une erreur est survenue." {
		t.Fatalf("message = %q", got)
	}
	if got := ErrorCode(codedError{}); got != "not_organizer" {
		t.Fatalf("code = %q", got)
	}
	if got := ErrorCode(errors.New("x")); got != "unknown" {
		t.Fatalf("code = %q", got)
	}
	if got := ErrorMessage(loc, "fr", nil); got != "" {
		t.Fatalf("message = %q, want empty", got)
	}

	bare := i18n.New(loc.Resolver(), nil)
	if got := ErrorMessage(bare, "fr", errors.New("raw")); got != "raw" {
		t.Fatalf("message = %q, want raw error text", got)
	}
}
