package crypto

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"nestkeeper/internal/domain"
)

var errBadSecretKey = errors.New("malformed portable secret key")

// secretKeyHRP is the human-readable prefix of the portable secret-key form.
const secretKeyHRP = "nsec"

// EncodeSecretKey renders a private key in the portable bech32 text form
// used for local credential storage.
func EncodeSecretKey(priv domain.X25519Private) (string, error) {
	conv, err := bech32.ConvertBits(priv.Slice(), 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(secretKeyHRP, conv)
}

// DecodeSecretKey parses the portable text form back into a private key.
func DecodeSecretKey(s string) (domain.X25519Private, error) {
	var priv domain.X25519Private
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return priv, err
	}
	if hrp != secretKeyHRP {
		return priv, errBadSecretKey
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return priv, err
	}
	if len(raw) != len(priv) {
		return priv, errBadSecretKey
	}
	copy(priv[:], raw)
	return priv, nil
}
