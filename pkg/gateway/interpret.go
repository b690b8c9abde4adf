package gateway

import "fmt"

// InterpretOptions controls how strictly echoed reply fields are checked.
// Not every gateway firmware echoes address/count on writes, so strict echo
// checking stays opt-in until the reply guarantees are confirmed.
type InterpretOptions struct {
	// StrictEcho makes a write reply without echoed address and count a
	// protocol violation instead of trusting the success flag alone.
	StrictEcho bool
	// DetailURL is attached to failures so the caller can consult the
	// gateway diagnostic log.
	DetailURL string
}

// InterpretRead maps a decoded envelope onto the result of the read request
// it answers. Pure mapping, no I/O.
func InterpretRead(env *Envelope, req *ReadRequest, opts InterpretOptions) (*ReadResult, error) {
	if !env.Success {
		return nil, rejected(env, opts)
	}

	reply := &readReply{}
	if err := env.decode(reply); err != nil {
		return nil, violation(opts, "read reply fields not decodable: %v", err)
	}
	if len(reply.Values) != int(req.Quantity) {
		return nil, violation(opts, "requested %d registers, gateway returned %d", req.Quantity, len(reply.Values))
	}
	if reply.Slave != nil && *reply.Slave != uint(req.Slave) {
		return nil, violation(opts, "gateway answered for slave %d, requested %d", *reply.Slave, req.Slave)
	}
	if reply.Address != nil && *reply.Address != uint(req.Address) {
		return nil, violation(opts, "gateway answered for address %d, requested %d", *reply.Address, req.Address)
	}

	values := make([]uint16, len(reply.Values))
	for i, v := range reply.Values {
		if v > AddressMax {
			return nil, violation(opts, "register value %d out of 16-bit range", v)
		}
		values[i] = uint16(v)
	}
	return &ReadResult{Slave: req.Slave, Address: req.Address, Values: values}, nil
}

// InterpretWrite maps a decoded envelope onto the result of the write request
// it answers. Echoed fields are checked for consistency when present; their
// absence is tolerated unless StrictEcho is set.
func InterpretWrite(env *Envelope, req *WriteRequest, opts InterpretOptions) (*WriteResult, error) {
	if !env.Success {
		return nil, rejected(env, opts)
	}

	reply := &writeReply{}
	if err := env.decode(reply); err != nil {
		return nil, violation(opts, "write reply fields not decodable: %v", err)
	}
	count := uint(len(req.Values))
	if reply.Count == nil && reply.Value != nil && count == 1 {
		// single-register replies echo the value instead of a count
		one := uint(1)
		reply.Count = &one
	}
	if reply.Count != nil && *reply.Count != count {
		return nil, violation(opts, "wrote %d registers, gateway confirmed %d", count, *reply.Count)
	}
	if reply.Address != nil && *reply.Address != uint(req.Address) {
		return nil, violation(opts, "gateway confirmed address %d, requested %d", *reply.Address, req.Address)
	}
	if reply.Slave != nil && *reply.Slave != uint(req.Slave) {
		return nil, violation(opts, "gateway confirmed slave %d, requested %d", *reply.Slave, req.Slave)
	}
	if opts.StrictEcho && (reply.Count == nil || reply.Address == nil) {
		return nil, violation(opts, "gateway did not echo address and count")
	}
	return &WriteResult{Slave: req.Slave, Address: req.Address, Count: uint16(count)}, nil
}

func rejected(env *Envelope, opts InterpretOptions) *GatewayFailure {
	reply := &failureReply{}
	_ = env.decode(reply)
	msg := reply.Error
	if len(msg) == 0 {
		msg = reply.Message
	}
	if len(msg) == 0 {
		msg = "gateway rejected the operation"
	}
	return &GatewayFailure{Category: FailureRejected, Message: msg, DetailURL: opts.DetailURL}
}

func violation(opts InterpretOptions, format string, args ...interface{}) *GatewayFailure {
	return &GatewayFailure{
		Category:  FailureProtocolViolation,
		Message:   fmt.Sprintf(format, args...),
		DetailURL: opts.DetailURL,
	}
}
