package parsing

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ExtractCOSEPayload extracts the payload from a COSE_Sign1 4-element array
// COSE_Sign1 structure: [protected, unprotected, payload, signature]
// Returns the payload bytes (element 2). Accepts both tagged (tag 18) and
// untagged encodings.
func ExtractCOSEPayload(coseBytes []byte) ([]byte, error) {
	var decoded any
	err := cbor.Unmarshal(coseBytes, &decoded)
	if err != nil {
		return nil, fmt.Errorf("parse COSE array: %w", err)
	}

	if tag, ok := decoded.(cbor.Tag); ok {
		decoded = tag.Content
	}

	coseArray, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid COSE_Sign1 structure: not an array")
	}
	if len(coseArray) != 4 {
		return nil, fmt.Errorf("invalid COSE_Sign1 structure: expected 4 elements, got %d", len(coseArray))
	}

	payload, ok := coseArray[2].([]byte)
	if !ok {
		return nil, fmt.Errorf("invalid payload in COSE structure")
	}

	return payload, nil
}
