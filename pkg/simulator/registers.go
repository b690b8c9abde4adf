package simulator

import (
	"errors"
	"sync"
)

var ErrSlaveUnreachable = errors.New("slave did not answer")
var ErrAddressRange = errors.New("register range exceeds the address space")
var ErrQuantityRange = errors.New("quantity out of range")

const registerSpace = 65536

// RegisterBank is the in-memory holding register state of the simulated bus,
// one 16-bit register space per configured slave. Slaves that were not
// configured behave like devices that never answer.
type RegisterBank struct {
	mux    sync.RWMutex
	slaves map[uint8][]uint16
}

func NewRegisterBank(slaves ...uint8) *RegisterBank {
	b := &RegisterBank{
		slaves: make(map[uint8][]uint16, len(slaves)),
	}
	for _, s := range slaves {
		b.slaves[s] = make([]uint16, registerSpace)
	}
	return b
}

func (b *RegisterBank) Read(slave uint8, address uint16, quantity uint) ([]uint16, error) {
	if quantity == 0 {
		return nil, ErrQuantityRange
	}
	if uint(address)+quantity-1 >= registerSpace {
		return nil, ErrAddressRange
	}

	b.mux.RLock()
	defer b.mux.RUnlock()
	regs, ok := b.slaves[slave]
	if !ok {
		return nil, ErrSlaveUnreachable
	}
	values := make([]uint16, quantity)
	copy(values, regs[address:uint(address)+quantity])
	return values, nil
}

func (b *RegisterBank) Write(slave uint8, address uint16, values []uint16) error {
	if len(values) == 0 {
		return ErrQuantityRange
	}
	if uint(address)+uint(len(values))-1 >= registerSpace {
		return ErrAddressRange
	}

	b.mux.Lock()
	defer b.mux.Unlock()
	regs, ok := b.slaves[slave]
	if !ok {
		return ErrSlaveUnreachable
	}
	copy(regs[address:], values)
	return nil
}
