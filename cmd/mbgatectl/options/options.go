package options

import (
	"time"

	"github.com/spf13/pflag"

	baseoptions "mbgatectl/pkg/generic/options"
)

type Options struct {
	Gateway    string        `json:"gateway"`
	Timeout    time.Duration `json:"timeout"`
	StrictEcho bool          `json:"strict-echo"`
	baseoptions.BaseOptions
}

// Defaults used by `read` when no positional arguments are given, matching
// the gateway firmware examples.
const (
	DefaultSlave    = 1
	DefaultAddress  = 0
	DefaultQuantity = 10
)

const (
	_defaultGateway = "http://10.0.0.46"
	_defaultTimeout = 5 * time.Second
)

func NewDefaultOptions() *Options {
	return &Options{
		Gateway:     _defaultGateway,
		Timeout:     _defaultTimeout,
		BaseOptions: baseoptions.NewDefaultBaseOptions(),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Gateway, "gateway", "g", o.Gateway, "Base URL of the Modbus HTTP gateway")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "How long one request/response exchange may take - e.g. 5s or 500ms")
	fs.BoolVar(&o.StrictEcho, "strict-echo", o.StrictEcho, "Require write replies to echo address and count")
}
