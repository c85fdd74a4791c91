package pairing

import (
	"net/url"
	"strings"

	"nestkeeper/internal/domain"
)

const (
	// OfferScheme prefixes every connection-offer URI.
	OfferScheme = "pairingoffer"

	// FallbackRelay is used when no configured endpoint is write-capable.
	FallbackRelay = "wss://relay.nestkeeper.io"
)

// SelectRelay picks the first write-capable endpoint, or the fixed fallback.
func SelectRelay(endpoints []domain.RelayEndpoint) string {
	for _, ep := range endpoints {
		if ep.Write && ep.URL != "" {
			return ep.URL
		}
	}
	return FallbackRelay
}

// BuildOffer assembles the immutable connection offer from the ephemeral
// identity, the app metadata and the chosen relay. Pure; rendering the URI
// as a scannable code is the caller's concern.
func BuildOffer(pub domain.X25519Public, secret, relayURL, appName, appURL string) domain.ConnectionOffer {
	return domain.ConnectionOffer{
		PublicKey:   pub,
		RelayURL:    relayURL,
		Secret:      secret,
		AppName:     appName,
		AppURL:      appURL,
		Permissions: domain.DefaultPermissions(),
	}
}

// OfferURI renders the offer as a single string:
//
//	pairingoffer://<pubkey-hex>?relay=...&secret=...&name=...&url=...&perms=...
func OfferURI(o domain.ConnectionOffer) string {
	perms := make([]string, len(o.Permissions))
	for i, p := range o.Permissions {
		perms[i] = p.String()
	}

	q := url.Values{}
	q.Set("relay", o.RelayURL)
	q.Set("secret", o.Secret)
	q.Set("name", o.AppName)
	if o.AppURL != "" {
		q.Set("url", o.AppURL)
	}
	q.Set("perms", strings.Join(perms, ","))

	return OfferScheme + "://" + o.PublicKey.Hex() + "?" + q.Encode()
}
