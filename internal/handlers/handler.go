package handlers

import (
	"log/slog"

	"github.com/whatsuprobl9x-arch/novaurl/internal/config"
	"github.com/whatsuprobl9x-arch/novaurl/internal/services"
)

type Handler struct {
	cfg    config.Config
	logger *slog.Logger
	links  *services.LinkService
	visits *services.VisitService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	links *services.LinkService,
	visits *services.VisitService,
) *Handler {
	return &Handler{
		cfg:    cfg,
		logger: logger,
		links:  links,
		visits: visits,
	}
}
