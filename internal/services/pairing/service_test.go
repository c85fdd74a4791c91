package pairing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestkeeper/internal/crypto"
	"nestkeeper/internal/domain"
	pairingproto "nestkeeper/internal/protocol/pairing"
	pairingsvc "nestkeeper/internal/services/pairing"
)

type fakeSub struct {
	ch chan domain.Event
}

func (s *fakeSub) Events() <-chan domain.Event { return s.ch }
func (s *fakeSub) Close()                      {}

type fakeRelay struct {
	mu   sync.Mutex
	subs []*fakeSub
}

func (r *fakeRelay) Subscribe(context.Context, domain.Filter) (domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &fakeSub{ch: make(chan domain.Event, 16)}
	r.subs = append(r.subs, s)
	return s, nil
}

func (r *fakeRelay) Publish(context.Context, domain.Event) error { return nil }
func (r *fakeRelay) Close() error                                { return nil }

func (r *fakeRelay) last() *fakeSub {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.subs) == 0 {
		return nil
	}
	return r.subs[len(r.subs)-1]
}

type memStore struct {
	mu    sync.Mutex
	saved *domain.PairingResult
}

func (m *memStore) SaveCredential(_ string, res domain.PairingResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &res
	return nil
}

func (m *memStore) LoadCredential(string) (domain.PairingResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return domain.PairingResult{}, false, nil
	}
	return *m.saved, true, nil
}

func (m *memStore) DeleteCredential() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}

func newService(relay domain.RelayClient, creds domain.CredentialStore) *pairingsvc.Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return pairingsvc.New(pairingproto.Config{
		AppName: "TestApp",
		Timeout: time.Second,
	}, relay, creds, log)
}

func TestBeginSupersedesPreviousAttempt(t *testing.T) {
	relay := &fakeRelay{}
	svc := newService(relay, &memStore{})

	first, err := svc.Begin(context.Background())
	require.NoError(t, err)

	second, err := svc.Begin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAborted, first.Status(), "superseded attempt is aborted")
	assert.NotEqual(t, first.Offer().PublicKey, second.Offer().PublicKey, "no key reuse across attempts")
	assert.NotEqual(t, first.Offer().Secret, second.Offer().Secret)

	_, err = first.Await(context.Background())
	assert.ErrorIs(t, err, pairingproto.ErrAborted, "the old attempt can no longer produce a result")
}

func TestAwaitPersistsCredentialOnSuccess(t *testing.T) {
	relay := &fakeRelay{}
	creds := &memStore{}
	svc := newService(relay, creds)

	att, err := svc.Begin(context.Background())
	require.NoError(t, err)

	signerPriv, signerPub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	done := make(chan struct{})
	var (
		res      domain.PairingResult
		awaitErr error
	)
	go func() {
		defer close(done)
		res, awaitErr = svc.Await(context.Background(), att, "hunter2-long-pass")
	}()

	// Wait for the subscription, then answer as the signer would.
	require.Eventually(t, func() bool { return relay.last() != nil }, time.Second, 5*time.Millisecond)
	content, err := crypto.EncryptV2(signerPriv, att.Offer().PublicKey, []byte(`{"result":"ack"}`))
	require.NoError(t, err)
	relay.last().ch <- domain.Event{
		Kind:    domain.KindPairing,
		From:    signerPub.Hex(),
		To:      att.Offer().PublicKey.Hex(),
		Content: content,
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Await did not finish")
	}
	require.NoError(t, awaitErr)

	stored, found, err := creds.LoadCredential("hunter2-long-pass")
	require.NoError(t, err)
	require.True(t, found, "credential must be stored on success")
	assert.Equal(t, res, stored)
	assert.Equal(t, signerPub.Hex(), stored.RemotePublicKey)
}

func TestCancelledAttemptStoresNothing(t *testing.T) {
	relay := &fakeRelay{}
	creds := &memStore{}
	svc := newService(relay, creds)

	att, err := svc.Begin(context.Background())
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := svc.Await(context.Background(), att, "pass")
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	svc.Cancel()
	svc.Cancel() // idempotent

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, pairingproto.ErrAborted)
	case <-time.After(2 * time.Second):
		t.Fatal("Await did not return after Cancel")
	}

	_, found, err := creds.LoadCredential("pass")
	require.NoError(t, err)
	assert.False(t, found, "no credential after a cancelled attempt")
}
