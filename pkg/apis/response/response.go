package response

import (
	"fmt"
	"strconv"
)

type responseError struct {
	Code    ErrCode `json:"code"`
	Message string  `json:"message"`
	Err     error   `json:"-"`
}

func (re *responseError) Error() string {
	if re == nil {
		return ""
	}
	s := `{
    "code": ` + strconv.Itoa(int(re.Code)) + `,
    "message": ` + re.Message + `
}`
	return s
}

func (re *responseError) GetCode() ErrCode {
	if re == nil {
		return 0
	}
	return re.Code
}

func (re *responseError) Unwrap() error {
	return re.Err
}

func IsResponseError(err error) bool {
	_, ok := err.(*responseError)
	return ok
}

func generateError(code ErrCode, s ...interface{}) *responseError {
	return &responseError{
		Code:    code,
		Message: fmt.Sprintf(errors[code], s...),
	}
}

func ErrSlaveUnreachable(slave string) *responseError {
	return generateError(ErrCodeSlaveUnreachable, slave)
}

func ErrAddressRange(start, end string) *responseError {
	return generateError(ErrCodeAddressRange, start, end)
}

func ErrQuantityRange(quantity string) *responseError {
	return generateError(ErrCodeQuantityRange, quantity)
}

// ReadReply is the gateway reply for a successful register read.
type ReadReply struct {
	Success bool     `json:"success"`
	SlaveID uint8    `json:"slave_id"`
	Address uint16   `json:"address"`
	Values  []uint16 `json:"values"`
}

// WriteReply is the gateway reply for a successful register write. Address
// and count are echoed so clients can verify the write landed where asked.
type WriteReply struct {
	Success bool   `json:"success"`
	SlaveID uint8  `json:"slave_id"`
	Address uint16 `json:"address"`
	Count   uint16 `json:"count"`
}

// FailureReply is the gateway reply for an operation it could not serve.
type FailureReply struct {
	Success bool    `json:"success"`
	Code    ErrCode `json:"code,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func Failure(err error) FailureReply {
	re, ok := err.(*responseError)
	if !ok {
		return FailureReply{Success: false, Error: err.Error()}
	}
	return FailureReply{Success: false, Code: re.Code, Error: re.Message}
}
