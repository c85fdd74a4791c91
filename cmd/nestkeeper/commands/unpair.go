package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func unpairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpair",
		Short: "Forget the stored signer pairing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.DeleteCredential(); err != nil {
				return err
			}
			fmt.Println("Pairing removed.")
			return nil
		},
	}
}
