package output

import (
	"context"

	"hytalei18n/pkg/i18n"
)

// ResourceSource provides locale resources to load into a catalog.
type ResourceSource interface {
	// Name identifies the source in logs and reports.
	Name() string
	Resources(ctx context.Context) ([]i18n.Resource, error)
}

// MessageStore persists locale resources.
type MessageStore interface {
	ResourceSource
	Import(ctx context.Context, resources []i18n.Resource) (int, error)
}
