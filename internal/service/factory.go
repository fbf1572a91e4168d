package service

import (
	"gatekeeper.app/api/internal/analyzer"
	"gatekeeper.app/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	analyzer analyzer.Client
}

type ServicesConfig struct {
	Stores   *store.Stores
	Analyzer analyzer.Client
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		stores:   cfg.Stores,
		analyzer: cfg.Analyzer,
	}
}

func (s *Services) Tickets() TicketService {
	return NewTicketService(s.stores.Tickets(), s.analyzer)
}
