package main

import (
	"github.com/cristianoliveira/csf-dashboard/internal/logging"
	"github.com/cristianoliveira/csf-dashboard/internal/platform"
	"github.com/cristianoliveira/csf-dashboard/internal/preferences"
	"github.com/cristianoliveira/csf-dashboard/internal/theme"
	"github.com/cristianoliveira/csf-dashboard/internal/toast"
)

// openStore and detectScheme are replaced in tests.
var (
	openStore    = preferences.NewFromConfig
	detectScheme = platform.FromConfig
)

// openThemes builds an initialized theme controller over the configured store
// and scheme. The returned release func closes both.
func openThemes(scheme platform.ColorScheme) (*theme.Controller, func()) {
	store := openStore()
	themes := theme.NewController(store, scheme,
		theme.WithLogger(logging.With("component", "theme")))
	themes.Initialize()
	return themes, func() {
		themes.Close()
		if err := store.Close(); err != nil {
			logging.With("component", "preferences").Warn("store close failed", "error", err.Error())
		}
	}
}

func newToasts() *toast.Controller {
	opts := append(toast.OptionsFromConfig(), toast.WithLogger(logging.With("component", "toast")))
	return toast.NewController(opts...)
}
