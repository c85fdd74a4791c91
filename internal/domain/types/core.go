package types

// Permission identifies one capability requested from the remote signer.
type Permission string

// String returns the string form of the permission.
func (p Permission) String() string { return string(p) }

// Capabilities requested in every connection offer. The signer must be able
// to sign events and speak both envelope schemes on our behalf.
const (
	PermSignEvent     Permission = "sign-event"
	PermEncryptLegacy Permission = "encrypt-legacy"
	PermDecryptLegacy Permission = "decrypt-legacy"
	PermEncryptV2     Permission = "encrypt-v2"
	PermDecryptV2     Permission = "decrypt-v2"
)

// DefaultPermissions is the fixed capability set embedded in offers.
func DefaultPermissions() []Permission {
	return []Permission{
		PermSignEvent,
		PermEncryptLegacy,
		PermDecryptLegacy,
		PermEncryptV2,
		PermDecryptV2,
	}
}

// RelayEndpoint is one configured relay with its read/write marks.
type RelayEndpoint struct {
	URL   string `json:"url"`
	Read  bool   `json:"read"`
	Write bool   `json:"write"`
}
