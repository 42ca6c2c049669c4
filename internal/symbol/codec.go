package symbol

import (
	"github.com/fxamacker/cbor/v2"
)

// Encode serializes a Definition to its compact, self-describing wire
// form. CBOR (rather than a fixed binary layout) is what lets the store
// tolerate adding fields to Definition/Usage later without a migration.
func Encode(d Definition) ([]byte, error) {
	return cbor.Marshal(d)
}

// Decode deserializes a Definition previously produced by Encode. A
// decode failure is always recoverable by the caller: the store logs and
// skips malformed records rather than treating them as fatal.
func Decode(b []byte) (Definition, error) {
	var d Definition
	err := cbor.Unmarshal(b, &d)
	return d, err
}
