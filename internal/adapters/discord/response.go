package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Discord caps message content at 2000 characters.
const maxContentLength = 2000

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(content, maxContentLength),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
