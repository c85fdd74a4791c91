package types

// Event kinds carried over the relay.
const (
	// KindPairing tags remote-signer pairing traffic.
	KindPairing = 24133
	// KindPing tags self-addressed reachability probes.
	KindPing = 20001
)

// Event is the wire envelope the relay stores and forwards. From and To are
// 64-character lowercase hex public keys; Content is scheme-specific
// ciphertext text. The relay never sees plaintext.
type Event struct {
	ID        string `json:"id"`
	Kind      int    `json:"kind"`
	From      string `json:"from"`
	To        string `json:"to"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// Filter selects the events a subscription receives.
type Filter struct {
	To    string `json:"to"`
	Kinds []int  `json:"kinds,omitempty"`
}

// Matches reports whether ev passes the filter.
func (f Filter) Matches(ev Event) bool {
	if f.To != "" && ev.To != f.To {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if ev.Kind == k {
			return true
		}
	}
	return false
}
