package gateway

import (
	"testing"
)

func TestBuildRead(t *testing.T) {
	tests := []struct {
		name     string
		slave    uint
		address  uint
		quantity uint
		wantErr  bool
	}{
		{name: "minimal", slave: 1, address: 0, quantity: 1},
		{name: "typical", slave: 1, address: 0, quantity: 10},
		{name: "max quantity", slave: 247, address: 0, quantity: 125},
		{name: "end of register space", slave: 1, address: 65535, quantity: 1},
		{name: "range touching the end", slave: 1, address: 65411, quantity: 125},
		{name: "slave zero is broadcast", slave: 0, address: 0, quantity: 1, wantErr: true},
		{name: "slave above bus range", slave: 248, address: 0, quantity: 1, wantErr: true},
		{name: "zero quantity", slave: 1, address: 0, quantity: 0, wantErr: true},
		{name: "quantity above pdu limit", slave: 1, address: 0, quantity: 126, wantErr: true},
		{name: "address above register space", slave: 1, address: 65536, quantity: 1, wantErr: true},
		{name: "range overflowing register space", slave: 1, address: 65535, quantity: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRead(tt.slave, tt.address, tt.quantity)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildRead(%d,%d,%d) expected error, got %+v", tt.slave, tt.address, tt.quantity, req)
				}
				if !IsValidationError(err) {
					t.Fatalf("expected ValidationError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildRead(%d,%d,%d) err=%v", tt.slave, tt.address, tt.quantity, err)
			}
			if uint(req.Slave) != tt.slave || uint(req.Address) != tt.address || uint(req.Quantity) != tt.quantity {
				t.Fatalf("request fields %+v do not match inputs", req)
			}
		})
	}
}

func TestBuildWrite(t *testing.T) {
	tests := []struct {
		name    string
		slave   uint
		address uint
		values  []uint16
		wantErr bool
	}{
		{name: "single", slave: 1, address: 100, values: []uint16{1234}},
		{name: "batch", slave: 1, address: 100, values: []uint16{1, 2, 3}},
		{name: "max batch", slave: 1, address: 0, values: make([]uint16, 123)},
		{name: "last register", slave: 247, address: 65535, values: []uint16{9}},
		{name: "empty payload", slave: 1, address: 0, values: nil, wantErr: true},
		{name: "payload above pdu limit", slave: 1, address: 0, values: make([]uint16, 124), wantErr: true},
		{name: "range overflowing register space", slave: 1, address: 65534, values: []uint16{1, 2, 3}, wantErr: true},
		{name: "bad slave", slave: 0, address: 0, values: []uint16{1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildWrite(tt.slave, tt.address, tt.values)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildWrite expected error, got %+v", req)
				}
				if !IsValidationError(err) {
					t.Fatalf("expected ValidationError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildWrite err=%v", err)
			}
			if uint(req.Slave) != tt.slave || uint(req.Address) != tt.address || len(req.Values) != len(tt.values) {
				t.Fatalf("request fields %+v do not match inputs", req)
			}
		})
	}
}

func TestBuildWriteCopiesPayload(t *testing.T) {
	values := []uint16{1, 2, 3}
	req, err := BuildWrite(1, 0, values)
	if err != nil {
		t.Fatalf("BuildWrite err=%v", err)
	}
	values[0] = 99
	if req.Values[0] != 1 {
		t.Fatalf("request payload aliases caller slice")
	}
}
