package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"nestkeeper/internal/app"
	pairingproto "nestkeeper/internal/protocol/pairing"
)

// pairCmd establishes the trust relationship with a remote signer: it shows
// the connection offer and waits for the signer's response on the relay.
func pairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair",
		Short: "Pair with a remote signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" && !cfg.UseKeyring {
				return fmt.Errorf("passphrase required (-p) unless --keyring is set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := app.NewWire(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer w.Close()

			attempt, err := w.Pairing.Begin(ctx)
			if err != nil {
				return err
			}

			fmt.Println("Scan or paste this offer into your signer:")
			fmt.Println()
			fmt.Println("  " + attempt.OfferURI())
			fmt.Println()
			fmt.Println("Waiting for the signer to respond (Ctrl-C cancels)...")

			res, err := w.Pairing.Await(ctx, attempt, passphrase)

			var protoErr *pairingproto.ProtocolError
			switch {
			case err == nil:
				fmt.Println("Paired.")
				fmt.Printf("  signer:  %s\n", res.RemotePublicKey)
				fmt.Printf("  account: %s\n", res.UserPublicKey)
				fmt.Printf("  relay:   %s\n", res.RelayURL)
				return nil
			case errors.As(err, &protoErr):
				return fmt.Errorf("the signer rejected the request: %s", protoErr.Reason)
			case errors.Is(err, pairingproto.ErrTimeout):
				return fmt.Errorf("no response before the deadline; try again, possibly with a different relay")
			case errors.Is(err, pairingproto.ErrAborted):
				fmt.Println("Cancelled.")
				return nil
			default:
				return err
			}
		},
	}
}
