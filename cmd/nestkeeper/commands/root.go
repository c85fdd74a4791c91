package commands

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nestkeeper/internal/app"
	"nestkeeper/internal/domain"
	"nestkeeper/internal/store"
)

var (
	home       string
	passphrase string
	relayURL   string
	useKeyring bool
	verbose    bool

	cfg   app.Config
	creds domain.CredentialStore
	log   = logrus.New()
)

func Execute() error {
	root := &cobra.Command{
		Use:           "nestkeeper",
		Short:         "Home and asset records on your own relays",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".nestkeeper")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			var err error
			cfg, err = app.LoadConfig(home)
			if err != nil {
				return err
			}
			if relayURL != "" {
				// A flag-supplied relay outranks the configured list.
				cfg.Relays = append([]domain.RelayEndpoint{
					{URL: relayURL, Read: true, Write: true},
				}, cfg.Relays...)
			}
			if useKeyring {
				cfg.UseKeyring = true
			}

			if cfg.UseKeyring {
				creds = store.NewKeyringStore()
			} else {
				creds = store.NewCredentialFileStore(home)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.nestkeeper)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored credential")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay URL overriding the configured list (e.g. ws://127.0.0.1:8080)")
	root.PersistentFlags().BoolVar(&useKeyring, "keyring", false, "store the credential in the OS keyring")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(pairCmd(), statusCmd(), unpairCmd(), pingCmd())
	return root.Execute()
}
