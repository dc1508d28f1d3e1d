package server

import (
	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/interfaces"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig carries backend, store and export settings. Defaults are
	// used when nil.
	AppConfig *config.Config

	Logger interfaces.Logger

	// Source overrides the HTTP report client when set (tests, demos).
	Source interfaces.ReportSource
}
