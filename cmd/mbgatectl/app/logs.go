package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mbgatectl/cmd/mbgatectl/options"
	"mbgatectl/pkg/gateway"
)

func newLogsCmd(o *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Fetch the gateway diagnostic log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			body, err := newClient(o).GetLogs(ctx)
			if err != nil {
				return describeFailure(err)
			}
			fmt.Println(body)
			return nil
		},
	}
}

// describeFailure keeps the three failure kinds distinguishable for the user:
// fix the input, check the network, or consult the gateway.
func describeFailure(err error) error {
	switch {
	case gateway.IsValidationError(err):
		return fmt.Errorf("request not sent, fix the input: %v", err)
	case gateway.IsTransportError(err):
		return fmt.Errorf("could not complete the exchange, check network and gateway address: %v", err)
	case gateway.IsGatewayFailure(err):
		return fmt.Errorf("gateway did not serve the operation: %v", err)
	}
	return err
}
