package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored signer pairing",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, found, err := creds.LoadCredential(passphrase)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("Not paired. Run `nestkeeper pair` to connect a signer.")
				return nil
			}
			fmt.Println("Paired.")
			fmt.Printf("  signer:  %s\n", res.RemotePublicKey)
			fmt.Printf("  account: %s\n", res.UserPublicKey)
			fmt.Printf("  relay:   %s\n", res.RelayURL)
			return nil
		},
	}
}
