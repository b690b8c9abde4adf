package options

import (
	"fmt"

	"mbgatectl/pkg/gateway"
)

func Validate(o *Options) []error {
	var errs []error
	if err := o.BaseOptions.ValidateAndApply(); err != nil {
		errs = append(errs, err)
	}
	if len(o.Slaves) == 0 {
		errs = append(errs, fmt.Errorf("at least one slave id must be configured"))
	}
	for _, s := range o.Slaves {
		if s < gateway.SlaveIDMin || s > gateway.SlaveIDMax {
			errs = append(errs, fmt.Errorf("slave id %d outside %d-%d", s, gateway.SlaveIDMin, gateway.SlaveIDMax))
		}
	}
	if o.LogCapacity < 1 {
		errs = append(errs, fmt.Errorf("log capacity must be positive, got %d", o.LogCapacity))
	}
	if (len(o.CertFile) == 0) != (len(o.KeyFile) == 0) {
		errs = append(errs, fmt.Errorf("--tls-cert-file and --tls-private-key-file must be set together"))
	}
	return errs
}
