package discord

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"hytalei18n/internal/application"
	pkgdiscord "hytalei18n/pkg/discord"
	"hytalei18n/pkg/i18n"
)

const (
	buttonReload = "btn_reload_catalog"
	embedColor   = 0x5865F2
	// Discord rejects embeds with more than 25 fields.
	maxStatusFields = 25
	maxMissingShown = 5
)

// HandleStatus answers with the coverage report and a reload button.
func (h *Handler) HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := pkgdiscord.InteractionLocale(i, h.baseLocale)
	report, err := h.service.Status(h.baseLocale)
	if err != nil {
		log.Printf("discord: status failed: %v", err)
		respondEphemeral(s, i.Interaction, pkgdiscord.ErrorMessage(h.ui, locale, err))
		return
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{h.statusEmbed(locale, report)},
			Components: h.statusComponents(locale),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// HandleReload reloads the catalog from every source.
func (h *Handler) HandleReload(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := pkgdiscord.InteractionLocale(i, h.baseLocale)
	respondEphemeral(s, i.Interaction, h.reload(context.Background(), locale))
}

func (h *Handler) reload(ctx context.Context, locale string) string {
	if err := h.service.Reload(ctx); err != nil {
		log.Printf("discord: reload failed: %v", err)
		return pkgdiscord.ErrorMessage(h.ui, locale, err)
	}
	cat := h.service.Localizer().Catalog()
	return h.ui.T(locale, "reload.done", i18n.Args{"count": cat.Len(), "locales": len(cat.Locales())})
}

func (h *Handler) statusEmbed(locale string, report application.Report) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       h.ui.T(locale, "status.title", nil),
		Description: h.ui.T(locale, "status.base", i18n.Args{"base": report.BaseLocale}),
		Color:       embedColor,
	}
	for _, st := range report.Locales {
		if len(embed.Fields) == maxStatusFields {
			break
		}
		value := h.ui.T(locale, "status.field", i18n.Args{
			"translated": st.Translated,
			"total":      st.BaseKeys,
			"completion": st.Completion,
		})
		if len(st.MissingKeys) > 0 {
			keys := st.MissingKeys
			if len(keys) > maxMissingShown {
				keys = append(keys[:maxMissingShown:maxMissingShown], "…")
			}
			value += "\n" + h.ui.T(locale, "status.missing", i18n.Args{"keys": strings.Join(keys, ", ")})
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   st.Locale,
			Value:  value,
			Inline: true,
		})
	}
	return embed
}

func (h *Handler) statusComponents(locale string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    h.ui.T(locale, "btn.reload", nil),
				Style:    discordgo.SecondaryButton,
				CustomID: buttonReload,
			},
		}},
	}
}
