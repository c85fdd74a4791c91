package pairing

import (
	"encoding/json"
	"regexp"
)

// A decrypted pairing payload is a small JSON object carrying either an
// "error" or a "result" field (an "id" echo may accompany both). Anything
// else is inconclusive and skipped by the listener.
type wireResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// connectResponse is the classified form of one decrypted payload.
type connectResponse struct {
	// reason is the signer's error message; non-empty means rejection and
	// takes precedence over any result.
	reason string
	// result is the raw result echo when the response is a success. Signers
	// legitimately echo different things here: the shared secret, a literal
	// acknowledgement, or the user's public key.
	result string
	ok     bool
}

// parseResponse classifies decrypted plaintext. It returns errInconclusive
// for anything that is not a well-formed pairing response.
func parseResponse(plaintext []byte) (connectResponse, error) {
	var w wireResponse
	if err := json.Unmarshal(plaintext, &w); err != nil {
		return connectResponse{}, errInconclusive
	}

	if w.Error != "" {
		return connectResponse{reason: w.Error}, nil
	}

	result, truthy := truthyResult(w.Result)
	if !truthy {
		return connectResponse{}, errInconclusive
	}
	return connectResponse{result: result, ok: true}, nil
}

// truthyResult reports whether the raw result counts as success and, when it
// is a string, returns its value for pubkey derivation.
func truthyResult(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return "", b
	}
	var null any
	if err := json.Unmarshal(raw, &null); err != nil || null == nil {
		return "", false
	}
	// Numbers, arrays, objects: present and not false, so truthy; no text
	// form to inspect for a pubkey.
	return "", true
}

var hexKeyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// deriveUserKey picks the user's public key from a success response. A
// 64-char lowercase hex echo is taken as the user pubkey itself; any other
// echo means the remote signer holds the user's identity directly.
func deriveUserKey(result, remote string) string {
	if hexKeyPattern.MatchString(result) {
		return result
	}
	return remote
}
