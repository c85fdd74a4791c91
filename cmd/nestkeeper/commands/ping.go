package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nestkeeper/internal/app"
	"nestkeeper/internal/domain"
)

// pingCmd publishes a self-addressed probe and waits for it to come back,
// which exercises the full publish/subscribe round trip against the relay.
func pingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check relay reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, found, err := creds.LoadCredential(passphrase)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("not paired yet; `nestkeeper ping` needs a stored account key")
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			w, err := app.NewWire(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer w.Close()

			sub, err := w.Relay.Subscribe(ctx, domain.Filter{To: res.UserPublicKey, Kinds: []int{domain.KindPing}})
			if err != nil {
				return err
			}
			defer sub.Close()

			start := time.Now()
			if err := w.Relay.Publish(ctx, domain.Event{
				Kind: domain.KindPing,
				From: res.UserPublicKey,
				To:   res.UserPublicKey,
			}); err != nil {
				return err
			}

			select {
			case _, ok := <-sub.Events():
				if !ok {
					return fmt.Errorf("relay closed the subscription")
				}
				fmt.Printf("Relay OK (%s, round trip %s)\n", res.RelayURL, time.Since(start).Round(time.Millisecond))
				return nil
			case <-ctx.Done():
				return fmt.Errorf("no echo from the relay: %w", ctx.Err())
			}
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for the echo")
	return cmd
}
