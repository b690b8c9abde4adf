package simulator

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/atomic"
)

const _defaultLogCapacity = 100

type Option func(*Manager)

// WithSlaves configures which slave ids answer on the simulated bus.
func WithSlaves(slaves ...uint8) Option {
	return func(m *Manager) {
		m.slaves = slaves
	}
}

// WithLogCapacity bounds the diagnostic log ring.
func WithLogCapacity(max int) Option {
	return func(m *Manager) {
		m.logCapacity = max
	}
}

// Manager owns the simulated gateway state: the register bank, the
// diagnostic log and the exchange counters.
type Manager struct {
	bank        *RegisterBank
	logs        *logBuffer
	slaves      []uint8
	logCapacity int
	started     time.Time

	reads    atomic.Uint64
	writes   atomic.Uint64
	failures atomic.Uint64
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		slaves:      []uint8{1},
		logCapacity: _defaultLogCapacity,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.bank = NewRegisterBank(m.slaves...)
	m.logs = newLogBuffer(m.logCapacity)
	m.started = time.Now()
	return m
}

func (m *Manager) ReadRegisters(slave uint8, address uint16, quantity uint) ([]uint16, error) {
	m.reads.Inc()
	values, err := m.bank.Read(slave, address, quantity)
	entry := LogEntry{Op: "read", SlaveID: slave, Address: address, Count: int(quantity), Success: err == nil}
	if err != nil {
		m.failures.Inc()
		entry.Detail = err.Error()
	}
	m.logs.Append(entry)
	return values, err
}

func (m *Manager) WriteRegisters(slave uint8, address uint16, values []uint16) error {
	m.writes.Inc()
	err := m.bank.Write(slave, address, values)
	entry := LogEntry{Op: "write", SlaveID: slave, Address: address, Count: len(values), Success: err == nil}
	if err != nil {
		m.failures.Inc()
		entry.Detail = err.Error()
	}
	m.logs.Append(entry)
	return err
}

func (m *Manager) Logs() []LogEntry {
	return m.logs.Snapshot()
}

// StatusReply mirrors the status endpoint of the real gateway firmware.
type StatusReply struct {
	Uptime      string   `json:"uptime"`
	Slaves      []uint8  `json:"slaves"`
	Reads       uint64   `json:"reads"`
	Writes      uint64   `json:"writes"`
	Failures    uint64   `json:"failures"`
	Cpus        []string `json:"cpus,omitempty"`
	Mem         string   `json:"mem,omitempty"`
	MemUsedPerc string   `json:"memUsedPercent,omitempty"`
}

func (m *Manager) Status() *StatusReply {
	reply := &StatusReply{
		Uptime:   time.Since(m.started).Round(time.Second).String(),
		Slaves:   m.slaves,
		Reads:    m.reads.Load(),
		Writes:   m.writes.Load(),
		Failures: m.failures.Load(),
	}
	if percents, err := cpu.Percent(0, true); err == nil {
		for _, p := range percents {
			reply.Cpus = append(reply.Cpus, fmt.Sprintf("%.2f%%", p))
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		reply.Mem = fmt.Sprintf("%d/%d", vm.Used, vm.Total)
		reply.MemUsedPerc = fmt.Sprintf("%.2f%%", vm.UsedPercent)
	}
	return reply
}
