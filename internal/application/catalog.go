package application

import (
	"context"
	"fmt"
	"log"

	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
)

// CatalogService loads resources from its sources into a Localizer.
type CatalogService struct {
	sources   []output.ResourceSource
	localizer *i18n.Localizer
}

func NewCatalogService(localizer *i18n.Localizer, sources ...output.ResourceSource) *CatalogService {
	return &CatalogService{
		sources:   sources,
		localizer: localizer,
	}
}

// Localizer returns the localizer the service reloads.
func (s *CatalogService) Localizer() *i18n.Localizer {
	return s.localizer
}

// Gather collects resources from every source, in source order.
func (s *CatalogService) Gather(ctx context.Context) ([]i18n.Resource, error) {
	var all []i18n.Resource
	for _, src := range s.sources {
		resources, err := src.Resources(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		all = append(all, resources...)
	}
	return all, nil
}

// Reload rebuilds the catalog from all sources and swaps it in. The previous
// catalog stays in service when any source or the load fails.
func (s *CatalogService) Reload(ctx context.Context) error {
	resources, err := s.Gather(ctx)
	if err != nil {
		return err
	}
	if err := s.localizer.Reload(resources...); err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	cat := s.localizer.Catalog()
	log.Printf("i18n: catalog reloaded (locales=%d, messages=%d)", len(cat.Locales()), cat.Len())
	return nil
}

// Render localizes key for locale.
func (s *CatalogService) Render(locale, key string, args i18n.Args) (string, error) {
	return s.localizer.Localize(locale, key, args)
}
