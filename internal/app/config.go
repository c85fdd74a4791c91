package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	"nestkeeper/internal/domain"
)

const configFilename = "config.json"

// Config holds runtime wiring options for building the app.
type Config struct {
	// Home is the config directory, e.g. $HOME/.nestkeeper.
	Home string `json:"-"`

	// AppName and AppURL identify this application inside connection offers.
	AppName string `json:"app_name"`
	AppURL  string `json:"app_url,omitempty"`

	// Relays lists candidate endpoints; the first write-capable one carries
	// the pairing exchange.
	Relays []domain.RelayEndpoint `json:"relays"`

	// UseKeyring selects the OS keyring over the encrypted file store.
	UseKeyring bool `json:"use_keyring,omitempty"`
}

// DefaultConfig returns the baseline configuration rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Home:    home,
		AppName: "Nestkeeper",
	}
}

// LoadConfig reads home/config.json over the defaults; a missing file just
// yields the defaults.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)
	if _, err := os.Stat(filepath.Join(home, configFilename)); os.IsNotExist(err) {
		return cfg, nil
	}
	b, err := os.ReadFile(filepath.Join(home, configFilename))
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
