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

func newReadCmd(o *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "read [slave] [address] [quantity]",
		Short: "Read holding registers through the gateway",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return errors.New("give slave, address and quantity together, or nothing for the defaults")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slave := uint(options.DefaultSlave)
			address := uint(options.DefaultAddress)
			quantity := uint(options.DefaultQuantity)
			if len(args) == 0 {
				fmt.Printf("Using defaults: slave=%d, address=%d, quantity=%d\n\n", slave, address, quantity)
			} else {
				var err error
				if slave, err = parseUintArg("slave", args[0]); err != nil {
					return err
				}
				if address, err = parseUintArg("address", args[1]); err != nil {
					return err
				}
				if quantity, err = parseUintArg("quantity", args[2]); err != nil {
					return err
				}
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			result, err := newClient(o).ReadRegisters(ctx, slave, address, quantity)
			if err != nil {
				return describeFailure(err)
			}

			fmt.Printf("Read %d registers from slave %d:\n", len(result.Values), result.Slave)
			for i, v := range result.Values {
				fmt.Printf("  [%d] = %d (0x%04X)\n", int(result.Address)+i, v, v)
			}
			return nil
		},
	}
}

func parseUintArg(name, raw string) (uint, error) {
	// base 0 so hex register addresses like 0x100 work too
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, errors.Errorf("%s %q is not a number", name, raw)
	}
	return uint(v), nil
}
