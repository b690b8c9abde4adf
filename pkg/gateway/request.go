package gateway

import "fmt"

// BuildRead validates a read intent and produces the canonical request.
// Pure guard, no I/O.
func BuildRead(slave, address, quantity uint) (*ReadRequest, error) {
	if err := validateSlave(slave); err != nil {
		return nil, err
	}
	if quantity < 1 || quantity > ReadQuantityMax {
		return nil, &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be 1-%d, got %d", ReadQuantityMax, quantity)}
	}
	if err := validateRange(address, quantity); err != nil {
		return nil, err
	}
	return &ReadRequest{
		Slave:    uint8(slave),
		Address:  uint16(address),
		Quantity: uint16(quantity),
	}, nil
}

// BuildWrite validates a write intent and produces the canonical request.
// The payload is copied so the request stays immutable after construction.
func BuildWrite(slave, address uint, values []uint16) (*WriteRequest, error) {
	if err := validateSlave(slave); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, &ValidationError{Field: "values", Reason: "payload must not be empty"}
	}
	if len(values) > WriteQuantityMax {
		return nil, &ValidationError{Field: "values", Reason: fmt.Sprintf("payload must not exceed %d registers, got %d", WriteQuantityMax, len(values))}
	}
	if err := validateRange(address, uint(len(values))); err != nil {
		return nil, err
	}
	payload := make([]uint16, len(values))
	copy(payload, values)
	return &WriteRequest{
		Slave:   uint8(slave),
		Address: uint16(address),
		Values:  payload,
	}, nil
}

func validateSlave(slave uint) error {
	if slave < SlaveIDMin || slave > SlaveIDMax {
		return &ValidationError{Field: "slave_id", Reason: fmt.Sprintf("must be %d-%d, got %d", SlaveIDMin, SlaveIDMax, slave)}
	}
	return nil
}

func validateRange(address, length uint) error {
	if address > AddressMax {
		return &ValidationError{Field: "address", Reason: fmt.Sprintf("must be 0-%d, got %d", AddressMax, address)}
	}
	if address+length-1 > AddressMax {
		return &ValidationError{Field: "address", Reason: fmt.Sprintf("range %d-%d exceeds register space", address, address+length-1)}
	}
	return nil
}
