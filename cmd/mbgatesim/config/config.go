package config

import (
	"mbgatectl/pkg/simulator"
)

type Config struct {
	SimulatorMgr *simulator.Manager
	CertFile     string
	KeyFile      string
}
