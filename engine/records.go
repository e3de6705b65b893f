package engine

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cloudx-io/openbidding/bidapi"
	"github.com/cloudx-io/openbidding/core"
)

// GenerateSelectionRecord builds and signs the audit record for a completed
// winner selection. The record commits to every participation's total and to
// the score set the ranking ran over, via nonced hashes, and carries the
// winner and runner-up with supplier identity stripped so it can be shared
// with losing suppliers.
func GenerateSelectionRecord(
	signer *SigningKeyManager,
	notice *core.BiddingNotice,
	participations []*core.Participation,
	mode bidapi.SelectionMode,
	result *core.SelectionResult,
) (bidapi.SelectionRecordCOSE, error) {
	participationHashNonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate participation hash nonce: %w", err)
	}

	noticeNonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notice nonce: %w", err)
	}

	scoreSetNonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate score set nonce: %w", err)
	}

	// Commit to every participation, evaluated or not
	participationHashes := make([]string, 0, len(participations))
	for _, p := range participations {
		participationHashes = append(participationHashes, core.ComputeParticipationHash(p.ID, p.TotalAmount, participationHashNonce))
	}

	// Commit to the score set the ranking was drawn from
	scores := make(map[string]float64, len(participations))
	for _, p := range participations {
		if p.IsEvaluated && p.EvaluationScore != nil {
			scores[p.ID] = *p.EvaluationScore
		}
	}

	data := &bidapi.SelectionRecordData{
		RecordID:               uuid.NewString(),
		NoticeHash:             core.ComputeNoticeHash(notice.ID, notice.BidNumber, noticeNonce),
		BidNumber:              notice.BidNumber,
		Mode:                   mode,
		ParticipationHashes:    participationHashes,
		ScoreSetHash:           core.ComputeScoreSetHash(scores, scoreSetNonce),
		Winner:                 bidapi.StripSupplier(result.Winner),
		RunnerUp:               bidapi.StripSupplier(result.RunnerUp),
		ParticipationHashNonce: participationHashNonce,
		NoticeNonce:            noticeNonce,
		ScoreSetNonce:          scoreSetNonce,
		Timestamp:              time.Now(),
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record data: %w", err)
	}

	coseBytes, err := signer.signPayload(payload)
	if err != nil {
		return nil, err
	}

	log.Printf("INFO: Selection record %s signed: %d bytes", data.RecordID, len(coseBytes))

	return bidapi.SelectionRecordCOSE(coseBytes), nil
}

// generateNonce produces 256 bits of hex-encoded entropy for record hashes.
func generateNonce() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("entropy generation failed: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
