package tx

import "errors"

var (
	// ErrTruncated indicates a parse step needs more bytes than remain in
	// the buffer.
	ErrTruncated = errors.New("tx: truncated transaction data")

	// ErrAmountOverflow indicates summing output values would exceed the
	// range of a uint64.
	ErrAmountOverflow = errors.New("tx: amount overflow")

	// ErrNoPaymentFound indicates no output pays the target address.
	ErrNoPaymentFound = errors.New("tx: no payment to target address")
)
