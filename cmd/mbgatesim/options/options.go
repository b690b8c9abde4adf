package options

import (
	"time"

	"github.com/spf13/pflag"

	"mbgatectl/cmd/mbgatesim/config"
	baseoptions "mbgatectl/pkg/generic/options"
	"mbgatectl/pkg/simulator"
)

type Options struct {
	Port        string        `json:"port"`
	Wait        time.Duration `json:"graceful-timeout"`
	Slaves      []uint        `json:"slaves"`
	LogCapacity int           `json:"log-capacity"`
	CertFile    string        `json:"tls-cert-file"`
	KeyFile     string        `json:"tls-private-key-file"`
	baseoptions.BaseOptions
}

const (
	_defaultPort        = "8502"
	_defaultWait        = 15 * time.Second
	_defaultLogCapacity = 100
)

func NewDefaultOptions() *Options {
	return &Options{
		Port:        _defaultPort,
		Wait:        _defaultWait,
		Slaves:      []uint{1},
		LogCapacity: _defaultLogCapacity,
		BaseOptions: baseoptions.NewDefaultBaseOptions(),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Port, "port", "P", o.Port, "Port exposed")
	fs.DurationVar(&o.Wait, "graceful-timeout", o.Wait, "The duration for which the server gracefully wait for existing connections to finish - e.g. 15s or 1m")
	fs.UintSliceVar(&o.Slaves, "slaves", o.Slaves, "Slave ids that answer on the simulated bus")
	fs.IntVar(&o.LogCapacity, "log-capacity", o.LogCapacity, "How many operations the diagnostic log keeps")
	fs.StringVar(&o.CertFile, "tls-cert-file", o.CertFile, "Serve TLS with this certificate")
	fs.StringVar(&o.KeyFile, "tls-private-key-file", o.KeyFile, "Private key matching --tls-cert-file")
}

func (o *Options) Config() (*config.Config, error) {
	slaves := make([]uint8, 0, len(o.Slaves))
	for _, s := range o.Slaves {
		slaves = append(slaves, uint8(s))
	}
	c := &config.Config{
		SimulatorMgr: simulator.NewManager(
			simulator.WithSlaves(slaves...),
			simulator.WithLogCapacity(o.LogCapacity),
		),
		CertFile: o.CertFile,
		KeyFile:  o.KeyFile,
	}
	return c, nil
}
