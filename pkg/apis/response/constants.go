package response

type ErrCode int

const (
	_                        ErrCode = 10000 + iota
	ErrCodeMalformedJSON             // 10001
	ErrCodeRequestBody               // 10002
	ErrCodeSlaveUnreachable          // 10003
	ErrCodeAddressRange              // 10004
	ErrCodeQuantityRange             // 10005
	ErrCodeWriteShape                // 10006
)

// !!! IMPORTANT PLEASE READ FIRST !!!
// You SHOULD add new code at the end, and append comment of number
// Meanwhile, the corresponding error message SHOULD be appended in response.errors
// The order MUST be consistent between them
