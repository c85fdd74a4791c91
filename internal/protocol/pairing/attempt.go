package pairing

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"

	"nestkeeper/internal/crypto"
	"nestkeeper/internal/domain"
	"nestkeeper/internal/util/memzero"
)

// DefaultTimeout bounds the whole listen phase, measured from subscription
// open.
const DefaultTimeout = 120 * time.Second

// Config carries everything an attempt needs besides the relay client.
type Config struct {
	AppName string
	AppURL  string
	Relays  []domain.RelayEndpoint

	// Timeout overrides DefaultTimeout when positive. Tests shorten it.
	Timeout time.Duration

	// Decrypter overrides the attempt's own scheme implementations.
	// Nil means the ephemeral key drives both schemes directly.
	Decrypter domain.EnvelopeDecrypter
}

// Attempt is one pairing exchange: fresh key material, one offer, one relay
// subscription, one terminal outcome. Attempts are never reused; regenerate
// by beginning a new one.
type Attempt struct {
	offer   domain.ConnectionOffer
	id      domain.EphemeralIdentity
	dec     domain.EnvelopeDecrypter
	relay   domain.RelayClient
	timeout time.Duration

	status atomic.Int32
	ran    atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Begin generates fresh key material and builds the connection offer. The
// relay subscription is not opened until Await.
func Begin(cfg Config, relay domain.RelayClient) (*Attempt, error) {
	a := &Attempt{
		relay:   relay,
		timeout: cfg.Timeout,
		done:    make(chan struct{}),
	}
	if a.timeout <= 0 {
		a.timeout = DefaultTimeout
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.status.Store(int32(domain.StatusGenerating))

	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return nil, wrapf(ErrGeneration, "keypair: %v", err)
	}
	secret, err := crypto.NewSharedSecret()
	if err != nil {
		memzero.Zero(priv[:])
		return nil, wrapf(ErrGeneration, "shared secret: %v", err)
	}

	a.id = domain.EphemeralIdentity{Priv: priv, Pub: pub}
	a.dec = cfg.Decrypter
	if a.dec == nil {
		a.dec = crypto.NewDecrypter(priv)
	}
	a.offer = BuildOffer(pub, secret, SelectRelay(cfg.Relays), cfg.AppName, cfg.AppURL)
	a.status.Store(int32(domain.StatusOffering))
	return a, nil
}

// Offer returns the immutable connection offer.
func (a *Attempt) Offer() domain.ConnectionOffer { return a.offer }

// OfferURI returns the offer rendered as a single displayable string.
func (a *Attempt) OfferURI() string { return OfferURI(a.offer) }

// Status returns the current lifecycle state. Safe from any goroutine.
func (a *Attempt) Status() domain.AttemptStatus {
	return domain.AttemptStatus(a.status.Load())
}

// Done is closed once the attempt has reached a terminal state and released
// its key material and subscription.
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Cancel aborts the attempt. It is idempotent, callable from any goroutine,
// and a no-op once a competing terminal state has already fired.
func (a *Attempt) Cancel() {
	a.cancel()
	// If Await never ran, finalize here so Done() still closes.
	if a.ran.CompareAndSwap(false, true) {
		a.status.Store(int32(domain.StatusAborted))
		a.wipe()
		close(a.done)
	}
}

// Await opens the relay subscription and drives the exchange to a terminal
// state: the first decryptable, interpretable response decides the outcome.
// Messages that fail both schemes or don't parse as responses are skipped
// without resetting the deadline. Await may be called once.
func (a *Attempt) Await(ctx context.Context) (domain.PairingResult, error) {
	if !a.ran.CompareAndSwap(false, true) {
		return domain.PairingResult{}, ErrAborted
	}
	defer close(a.done)
	defer a.wipe()

	runCtx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()

	sub, err := a.relay.Subscribe(runCtx, domain.Filter{
		To:    a.offer.PublicKey.Hex(),
		Kinds: []int{domain.KindPairing},
	})
	if err != nil {
		if a.ctx.Err() != nil {
			return a.fail(domain.StatusAborted, ErrAborted)
		}
		return a.fail(domain.StatusFailed, wrapf(ErrTransport, "subscribe: %v", err))
	}
	defer sub.Close()
	a.status.Store(int32(domain.StatusListening))

	for {
		select {
		case <-ctx.Done():
			return a.fail(domain.StatusAborted, ErrAborted)

		case <-runCtx.Done():
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) && a.ctx.Err() == nil {
				return a.fail(domain.StatusTimedOut, ErrTimeout)
			}
			return a.fail(domain.StatusAborted, ErrAborted)

		case ev, ok := <-sub.Events():
			// Re-check cancellation after every wakeup, before touching
			// the message: Cancel can race the stream.
			if a.ctx.Err() != nil || ctx.Err() != nil {
				return a.fail(domain.StatusAborted, ErrAborted)
			}
			if !ok {
				return a.fail(domain.StatusFailed, wrapf(ErrTransport, "subscription closed"))
			}

			res, err := a.consume(ev)
			switch {
			case err == nil:
				a.status.Store(int32(domain.StatusConnected))
				return res, nil
			case skippable(err):
				a.status.Store(int32(domain.StatusListening))
			default:
				return a.fail(domain.StatusFailed, err)
			}
		}
	}
}

// consume runs one inbound event through decrypt and interpret. A skippable
// error keeps the attempt listening; any other error ends it.
func (a *Attempt) consume(ev domain.Event) (domain.PairingResult, error) {
	sender, ok := domain.ParsePublicHex(ev.From)
	if !ok {
		return domain.PairingResult{}, errInconclusive
	}

	a.status.Store(int32(domain.StatusDecrypting))
	plaintext, err := decryptEnvelope(a.dec, sender, ev.Content)
	if err != nil {
		return domain.PairingResult{}, err
	}

	a.status.Store(int32(domain.StatusValidating))
	resp, err := parseResponse(plaintext)
	if err != nil {
		return domain.PairingResult{}, err
	}
	if !resp.ok {
		return domain.PairingResult{}, &ProtocolError{Reason: resp.reason}
	}

	// Materialize the session. The sender address, not the payload, is the
	// remote signer's identity.
	encoded, err := crypto.EncodeSecretKey(a.id.Priv)
	if err != nil {
		return domain.PairingResult{}, wrapf(ErrGeneration, "encode secret key: %v", err)
	}
	remote := ev.From
	return domain.PairingResult{
		RemotePublicKey: remote,
		UserPublicKey:   deriveUserKey(resp.result, remote),
		SecretKey:       encoded,
		RelayURL:        a.offer.RelayURL,
	}, nil
}

func (a *Attempt) fail(status domain.AttemptStatus, err error) (domain.PairingResult, error) {
	a.status.Store(int32(status))
	return domain.PairingResult{}, err
}

// wipe zeroizes the attempt's copy of the ephemeral secret key. The encoded
// form inside a successful PairingResult is the only thing that survives.
func (a *Attempt) wipe() {
	memzero.Zero32((*[32]byte)(&a.id.Priv))
	if d, ok := a.dec.(*crypto.Decrypter); ok {
		d.Wipe()
	}
}

// Compile-time assertion that Attempt implements domain.PairingAttempt.
var _ domain.PairingAttempt = (*Attempt)(nil)
