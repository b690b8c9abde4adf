package options

import (
	"fmt"
	"net/url"
)

func Validate(o *Options) []error {
	var errs []error
	if err := o.BaseOptions.ValidateAndApply(); err != nil {
		errs = append(errs, err)
	}
	u, err := url.Parse(o.Gateway)
	if err != nil {
		errs = append(errs, fmt.Errorf("gateway url %q: %v", o.Gateway, err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		errs = append(errs, fmt.Errorf("gateway url %q must be http(s)://host[:port]", o.Gateway))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", o.Timeout))
	}
	return errs
}
