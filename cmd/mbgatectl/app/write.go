package app

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mbgatectl/cmd/mbgatectl/options"
)

func newWriteCmd(o *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "write <slave> <address> <value>...",
		Short:   "Write holding registers through the gateway",
		Example: "  mbgatectl write 1 100 1234\n  mbgatectl write 1 100 1234 5678 9012",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slave, err := parseUintArg("slave", args[0])
			if err != nil {
				return err
			}
			address, err := parseUintArg("address", args[1])
			if err != nil {
				return err
			}
			values := make([]uint16, 0, len(args)-2)
			for _, raw := range args[2:] {
				v, err := strconv.ParseUint(raw, 0, 16)
				if err != nil {
					return errors.Errorf("value %q is not a 16-bit register value", raw)
				}
				values = append(values, uint16(v))
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			result, err := newClient(o).WriteRegisters(ctx, slave, address, values)
			if err != nil {
				return describeFailure(err)
			}

			if result.Count == 1 {
				fmt.Printf("Wrote %d (0x%04X) to address %d on slave %d\n", values[0], values[0], result.Address, result.Slave)
			} else {
				fmt.Printf("Wrote %d values starting at address %d on slave %d\n", result.Count, result.Address, result.Slave)
			}
			return nil
		},
	}
}
