package pairing

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestkeeper/internal/crypto"
	"nestkeeper/internal/domain"
)

func TestSelectRelay(t *testing.T) {
	assert.Equal(t, FallbackRelay, SelectRelay(nil), "no endpoints falls back")

	readOnly := []domain.RelayEndpoint{{URL: "wss://ro.example", Read: true}}
	assert.Equal(t, FallbackRelay, SelectRelay(readOnly), "no writable endpoint falls back")

	mixed := []domain.RelayEndpoint{
		{URL: "wss://ro.example", Read: true},
		{URL: "wss://first.example", Read: true, Write: true},
		{URL: "wss://second.example", Write: true},
	}
	assert.Equal(t, "wss://first.example", SelectRelay(mixed), "first writable endpoint wins")
}

func TestOfferURI(t *testing.T) {
	_, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	secret, err := crypto.NewSharedSecret()
	require.NoError(t, err)

	offer := BuildOffer(pub, secret, "wss://relay.example", "TestApp", "https://testapp.example")
	uri := OfferURI(offer)

	require.True(t, strings.HasPrefix(uri, "pairingoffer://"+pub.Hex()+"?"),
		"offer must start with the scheme and the ephemeral public key, got %q", uri)

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "wss://relay.example", q.Get("relay"))
	assert.Equal(t, secret, q.Get("secret"))
	assert.Len(t, q.Get("secret"), 8)
	assert.Equal(t, "TestApp", q.Get("name"))
	assert.Equal(t, "https://testapp.example", q.Get("url"))

	perms := strings.Split(q.Get("perms"), ",")
	assert.Contains(t, perms, "sign-event")
	assert.Contains(t, perms, "encrypt-legacy")
	assert.Contains(t, perms, "decrypt-legacy")
	assert.Contains(t, perms, "encrypt-v2")
	assert.Contains(t, perms, "decrypt-v2")

	// The raw string carries the escaped relay, as scanners receive it.
	assert.Contains(t, uri, "relay=wss%3A%2F%2Frelay.example")
	assert.Contains(t, uri, "name=TestApp")
}

func TestOfferURIOmitsEmptyURL(t *testing.T) {
	_, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	uri := OfferURI(BuildOffer(pub, "s3cr3tab", "wss://relay.example", "TestApp", ""))
	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	_, present := parsed.Query()["url"]
	assert.False(t, present)
}
