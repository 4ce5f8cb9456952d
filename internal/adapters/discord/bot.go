package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"hytalei18n/internal/application"
	"hytalei18n/internal/config"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot serving the catalog of service.
func NewBot(cfg *config.Config, service *application.CatalogService) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	handler, err := NewHandler(service, cfg.DefaultLocale)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandTranslate:
			b.handler.HandleTranslate(s, i)
		case commandStatus:
			b.handler.HandleStatus(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == buttonReload {
			b.handler.HandleReload(s, i)
		}
	}
}

// Start registers the commands and runs the bot until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.handler.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.DiscordGuildID, cmd); err != nil {
			log.Printf("discord: register command %s: %v", cmd.Name, err)
		}
	}

	log.Printf("discord: bot online as %s", b.session.State.User.Username)
	<-ctx.Done()
	return nil
}
