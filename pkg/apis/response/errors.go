package response

var errors = map[ErrCode]string{
	ErrCodeMalformedJSON:    "The JSON you provided was not well-formed or did not validate against our published format.",
	ErrCodeRequestBody:      "Request body error",
	ErrCodeSlaveUnreachable: "Slave %s did not answer",
	ErrCodeAddressRange:     "Register range %s-%s exceeds the address space",
	ErrCodeQuantityRange:    "Quantity %s out of range",
	ErrCodeWriteShape:       "Write body must carry exactly one of value/values",
}

// !!! IMPORTANT PLEASE READ FIRST !!!
// You SHOULD add new code at the end of enum firstly.

var ErrMalformedJSON = &responseError{
	Code:    ErrCodeMalformedJSON,
	Message: errors[ErrCodeMalformedJSON],
}

var ErrRequestBody = &responseError{
	Code:    ErrCodeRequestBody,
	Message: errors[ErrCodeRequestBody],
}

var ErrWriteShape = &responseError{
	Code:    ErrCodeWriteShape,
	Message: errors[ErrCodeWriteShape],
}
