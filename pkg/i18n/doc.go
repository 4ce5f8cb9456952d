// Package i18n loads localized message catalogs, resolves keys through a
// locale fallback chain and renders {placeholder} templates.
//
// A Localizer is an owned value: build one per application context and pass
// it to whatever needs translations. Reload swaps the whole catalog at once.
package i18n
