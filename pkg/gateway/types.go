package gateway

// Modbus application protocol limits for holding register access. The HTTP
// gateway does not enforce them, so the client must reject violations before
// anything reaches the wire.
const (
	SlaveIDMin = 1
	SlaveIDMax = 247

	AddressMax = 65535

	// PDU size limits per request
	ReadQuantityMax  = 125
	WriteQuantityMax = 123
)

// ReadRequest asks for Quantity holding registers of Slave starting at Address.
type ReadRequest struct {
	Slave    uint8
	Address  uint16
	Quantity uint16
}

// WriteRequest writes Values to consecutive registers of Slave starting at
// Address. Callers always supply a slice, even for one register; whether the
// exchange uses the single or the batch wire shape is the transport's choice.
type WriteRequest struct {
	Slave   uint8
	Address uint16
	Values  []uint16
}

type ReadResult struct {
	Slave   uint8
	Address uint16
	Values  []uint16
}

type WriteResult struct {
	Slave   uint8
	Address uint16
	Count   uint16
}
