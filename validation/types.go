package validation

// RecordValidationResult contains the outcome of every check run against a
// signed selection record. Call IsValid() for the overall status.
type RecordValidationResult struct {
	SignatureValid         bool
	ParticipationHashValid bool
	WinnerValid            bool
	ClearingTotalValid     bool
	ValidationDetails      []string
}

// IsValid returns true if all record validation checks passed
func (r *RecordValidationResult) IsValid() bool {
	return r.SignatureValid && r.ParticipationHashValid && r.WinnerValid && r.ClearingTotalValid
}
