// Package validation verifies exported selection records offline: a supplier
// or auditor holding a record, the engine's public key and its own submission
// data can confirm the record is authentic, that its participation was part
// of the selection, and that the winner determination matches expectations.
package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/openbidding/bidapi"
	"github.com/cloudx-io/openbidding/core"
)

const clearingTotalPrecision int32 = 4

// RecordValidationInput contains all inputs needed for selection record validation
type RecordValidationInput struct {
	RecordCOSEGzip  bidapi.SelectionRecordCOSEGzip // Gzipped format from win/loss notifications
	PublicKeyPEM    string                         // Engine signing key, PEM format
	ParticipationID string
	TotalAmount     float64  // The validator's own submitted total
	IsWinner        bool     // Expected outcome (true = expect to have won)
	ClearingTotal   *float64 // nil = no winner expected, non-nil = winner with this total
}

// ValidateSelectionRecord validates a signed selection record and verifies:
// - The record signature is authentic
// - The participation was included in the selection
// - Winner/loser determination
// - The winning (clearing) total matches
//
// Returns:
//   - RecordValidationResult with detailed results (call result.IsValid() to check overall status)
//   - error if validation cannot be performed (e.g., malformed input)
func ValidateSelectionRecord(input *RecordValidationInput) (*RecordValidationResult, error) {
	// Decompress the record envelope
	recordCOSE, err := input.RecordCOSEGzip.Decompress()
	if err != nil {
		return nil, fmt.Errorf("decompress record: %w", err)
	}

	result := &RecordValidationResult{}

	// Verify the COSE signature before trusting any payload field
	if err := VerifyRecordSignature(recordCOSE, input.PublicKeyPEM); err != nil {
		result.SignatureValid = false
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Signature invalid: %v", err))
	} else {
		result.SignatureValid = true
		result.ValidationDetails = append(result.ValidationDetails, "Record signature verified")
	}

	data, err := recordCOSE.ParsePayload()
	if err != nil {
		return nil, fmt.Errorf("failed to parse record payload: %w", err)
	}

	result.ParticipationHashValid = validateParticipationHash(input, data, result)
	result.WinnerValid = validateWinner(input, data, result)
	result.ClearingTotalValid = validateClearingTotal(input, data, result)

	return result, nil
}

func validateParticipationHash(input *RecordValidationInput, data *bidapi.SelectionRecordData, result *RecordValidationResult) bool {
	nonce := data.ParticipationHashNonce
	if nonce == "" {
		result.ValidationDetails = append(result.ValidationDetails, "Participation hash nonce missing from record")
		return false
	}

	computedHash := core.ComputeParticipationHash(input.ParticipationID, input.TotalAmount, nonce)

	for _, recordedHash := range data.ParticipationHashes {
		if computedHash == recordedHash {
			result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Participation hash found in record: %s", computedHash))
			return true
		}
	}

	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Participation hash NOT found in record. Computed: %s", computedHash))
	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Total hashes in record: %d", len(data.ParticipationHashes)))
	return false
}

func validateWinner(input *RecordValidationInput, data *bidapi.SelectionRecordData, result *RecordValidationResult) bool {
	wonInRecord := data.Winner != nil && data.Winner.ID == input.ParticipationID

	if wonInRecord == input.IsWinner {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Winner determination matches: is_winner=%t", input.IsWinner))
		return true
	}

	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Winner determination mismatch: expected is_winner=%t, record says %t", input.IsWinner, wonInRecord))
	return false
}

func validateClearingTotal(input *RecordValidationInput, data *bidapi.SelectionRecordData, result *RecordValidationResult) bool {
	if input.ClearingTotal == nil {
		// Validator expects no winner
		if data.Winner == nil {
			result.ValidationDetails = append(result.ValidationDetails, "Clearing total validation passed: no winner expected and no winner in record")
			return true
		}
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Clearing total mismatch: expected no winner, but record has winner with total %.6f", data.Winner.TotalAmount))
		return false
	}

	if data.Winner == nil {
		result.ValidationDetails = append(result.ValidationDetails, "Clearing total mismatch: winner expected but record has none")
		return false
	}

	expected := decimal.NewFromFloat(*input.ClearingTotal).Round(clearingTotalPrecision)
	recorded := decimal.NewFromFloat(data.Winner.TotalAmount).Round(clearingTotalPrecision)
	if expected.Equal(recorded) {
		result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Clearing total matches: %.6f", data.Winner.TotalAmount))
		return true
	}

	result.ValidationDetails = append(result.ValidationDetails, fmt.Sprintf("Clearing total mismatch: expected %.6f, record has %.6f", *input.ClearingTotal, data.Winner.TotalAmount))
	return false
}
