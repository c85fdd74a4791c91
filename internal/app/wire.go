package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"nestkeeper/internal/domain"
	pairingproto "nestkeeper/internal/protocol/pairing"
	"nestkeeper/internal/relay"
	pairingsvc "nestkeeper/internal/services/pairing"
	"nestkeeper/internal/store"
)

// Wire bundles the stores, clients and services the CLI uses.
type Wire struct {
	Config      Config
	Relay       domain.RelayClient
	Credentials domain.CredentialStore
	Pairing     domain.PairingService
	Log         *logrus.Logger
}

// NewWire constructs the dependency graph from cfg. It dials the selected
// relay, so it needs a context.
func NewWire(ctx context.Context, cfg Config, log *logrus.Logger) (*Wire, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var creds domain.CredentialStore
	if cfg.UseKeyring {
		creds = store.NewKeyringStore()
	} else {
		creds = store.NewCredentialFileStore(cfg.Home)
	}

	rc, err := relay.Dial(ctx, pairingproto.SelectRelay(cfg.Relays), log)
	if err != nil {
		return nil, err
	}

	svc := pairingsvc.New(pairingproto.Config{
		AppName: cfg.AppName,
		AppURL:  cfg.AppURL,
		Relays:  cfg.Relays,
	}, rc, creds, log)

	return &Wire{
		Config:      cfg,
		Relay:       rc,
		Credentials: creds,
		Pairing:     svc,
		Log:         log,
	}, nil
}

// Close releases the relay connection.
func (w *Wire) Close() error {
	return w.Relay.Close()
}
