package tx

import (
	"bytes"
	"fmt"
	"math"

	"github.com/bitproof-org/libspv-go/address"
)

// SumPayments totals the satoshis paid to the target address across the
// given outputs.
//
// When the target decodes as a segwit (bech32) address, outputs are matched
// by their canonical 20-byte hash, so a P2PKH output committing to the same
// hash-160 also counts. When the target is not bech32-decodable, matching
// falls back to exact string equality against the recognized address,
// which covers base58check P2PKH targets without decoding either side.
//
// Accumulation is overflow-checked. Zero matching outputs is
// ErrNoPaymentFound, never a zero total: callers must be able to tell "no
// payment" apart from a zero-value payment.
func SumPayments(outputs []Output, target string) (uint64, error) {
	targetHash, byHash := address.ResolveTarget(target)

	var total uint64
	matched := false
	for _, out := range outputs {
		if byHash {
			if out.AddressHash == nil || !bytes.Equal(out.AddressHash, targetHash) {
				continue
			}
		} else {
			if out.Address == "" || out.Address != target {
				continue
			}
		}

		if out.Value > math.MaxUint64-total {
			return 0, fmt.Errorf("%w: adding %d to %d", ErrAmountOverflow, out.Value, total)
		}
		total += out.Value
		matched = true
	}

	if !matched {
		return 0, ErrNoPaymentFound
	}
	return total, nil
}
