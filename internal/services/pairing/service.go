package pairing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"nestkeeper/internal/domain"
	pairingproto "nestkeeper/internal/protocol/pairing"
)

// Service owns the single active pairing attempt and the stored credential.
//
// This service handles:
//   - Beginning an attempt (and fully superseding any previous one).
//   - Driving an attempt to its terminal state.
//   - Persisting the credential bundle on success.
type Service struct {
	cfg   pairingproto.Config
	relay domain.RelayClient
	creds domain.CredentialStore
	log   *logrus.Entry

	mu      sync.Mutex
	current *pairingproto.Attempt
}

// New constructs a pairing Service with the given relay client and
// credential store.
func New(cfg pairingproto.Config, relay domain.RelayClient, creds domain.CredentialStore, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		cfg:   cfg,
		relay: relay,
		creds: creds,
		log:   log.WithField("component", "pairing"),
	}
}

// Begin starts a fresh attempt with brand-new key material. Any previous
// attempt is cancelled and fully torn down, subscription included, before
// the new one exists; no two attempts ever share state or run listeners
// concurrently.
func (s *Service) Begin(_ context.Context) (domain.PairingAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.current; prev != nil {
		prev.Cancel()
		<-prev.Done()
		s.current = nil
		s.log.Debug("previous attempt superseded")
	}

	att, err := pairingproto.Begin(s.cfg, s.relay)
	if err != nil {
		return nil, err
	}
	s.current = att
	s.log.WithField("pubkey", att.Offer().PublicKey.Hex()).Info("pairing attempt started")
	return att, nil
}

// Await drives the attempt to its terminal state and persists the
// credential on success.
func (s *Service) Await(ctx context.Context, attempt domain.PairingAttempt, passphrase string) (domain.PairingResult, error) {
	res, err := attempt.Await(ctx)
	switch {
	case err == nil:
		s.log.WithFields(logrus.Fields{
			"remote": res.RemotePublicKey,
			"user":   res.UserPublicKey,
		}).Info("pairing connected")
	case errors.Is(err, pairingproto.ErrAborted):
		s.log.Info("pairing cancelled")
		return res, err
	default:
		s.log.WithError(err).Warn("pairing did not complete")
		return res, err
	}

	if err := s.creds.SaveCredential(passphrase, res); err != nil {
		return domain.PairingResult{}, fmt.Errorf("pairing succeeded but credential could not be stored: %w", err)
	}
	return res, nil
}

// Cancel aborts the active attempt, if any. Idempotent; a no-op when the
// attempt already reached a terminal state.
func (s *Service) Cancel() {
	s.mu.Lock()
	att := s.current
	s.mu.Unlock()
	if att != nil {
		att.Cancel()
	}
}

// Compile-time assertion that Service implements domain.PairingService.
var _ domain.PairingService = (*Service)(nil)
