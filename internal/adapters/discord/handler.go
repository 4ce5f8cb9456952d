package discord

import (
	"embed"
	"fmt"

	"hytalei18n/internal/application"
	"hytalei18n/pkg/i18n"
	"hytalei18n/pkg/i18n/resource"
)

//go:embed lang/*.lang
var langFS embed.FS

// Handler handles Discord interactions against a catalog service.
type Handler struct {
	service    *application.CatalogService
	ui         *i18n.Localizer
	baseLocale string
}

// NewHandler creates a Handler. The bot's own texts come from the embedded
// lang files; rendered messages come from service.
func NewHandler(service *application.CatalogService, baseLocale string) (*Handler, error) {
	ui, err := loadUIMessages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		service:    service,
		ui:         ui,
		baseLocale: baseLocale,
	}, nil
}

func loadUIMessages() (*i18n.Localizer, error) {
	resources, err := resource.LoadPatterns(langFS, "lang/%s.lang")
	if err != nil {
		return nil, fmt.Errorf("discord: load messages: %w", err)
	}
	cat, err := i18n.Load(resources...)
	if err != nil {
		return nil, fmt.Errorf("discord: load messages: %w", err)
	}
	resolver, err := i18n.NewResolver(i18n.DefaultLocale)
	if err != nil {
		return nil, err
	}
	return i18n.New(resolver, cat), nil
}
