package app

import (
	"os"

	"github.com/spf13/cobra"
	utilserrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"mbgatectl/cmd/mbgatectl/options"
	"mbgatectl/pkg/gateway"
	baseoptions "mbgatectl/pkg/generic/options"
	"mbgatectl/pkg/version"
	"mbgatectl/pkg/version/verflag"
)

const (
	ComponentCtl = "mbgatectl"
)

func NewCtlCmd() *cobra.Command {
	o := options.NewDefaultOptions()
	cmd := &cobra.Command{
		Use:           ComponentCtl,
		Long:          `mbgatectl reads and writes holding registers on Modbus devices through the gateway's HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verflag.PrintAndExitIfRequested()

			if err := baseoptions.ParseAndApplyConfigFile(o, os.Args[1:]); err != nil {
				return err
			}
			if errs := options.Validate(o); len(errs) != 0 {
				return utilserrors.NewAggregate(errs)
			}
			klog.V(3).InfoS("Using gateway", "url", o.Gateway, "version", version.Get())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	fs := cmd.PersistentFlags()
	verflag.AddFlags(fs)
	o.AddFlags(fs)
	o.AddPersistentFlags(fs)

	cmd.AddCommand(newReadCmd(o), newWriteCmd(o), newLogsCmd(o))

	return cmd
}

func newClient(o *options.Options) *gateway.Client {
	return gateway.New(o.Gateway,
		gateway.WithTimeout(o.Timeout),
		gateway.WithStrictEcho(o.StrictEcho),
	)
}
