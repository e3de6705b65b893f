package core

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// ComputeParticipationHash computes the commitment hash for one participation
// as embedded in signed selection records. Used by both the engine (to
// generate hashes) and validation (to verify hashes).
//
// Formula: SHA256(participation_id + "|" + sprintf("%.6f", total_amount) + "|" + nonce)
//
// The total is formatted to exactly 6 decimal places to ensure consistent
// hashing regardless of how the float is represented in memory.
func ComputeParticipationHash(participationID string, totalAmount float64, nonce string) string {
	data := fmt.Sprintf("%s|%.6f|%s", participationID, totalAmount, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ComputeNoticeHash computes the commitment hash binding a selection record
// to a specific bidding notice.
//
// Formula: SHA256(notice_id + "|" + bid_number + "|" + nonce)
func ComputeNoticeHash(noticeID, bidNumber, nonce string) string {
	data := fmt.Sprintf("%s|%s|%s", noticeID, bidNumber, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ComputeScoreSetHash computes a single hash over the evaluation scores that
// drove a selection, so a record can prove which score set it was ranked on.
//
// Formula: SHA256(nonce + "|" + sorted_key_value_pairs)
// where sorted_key_value_pairs = "id1:score1|id2:score2|..." (sorted by
// participation ID). Scores are formatted to exactly 6 decimal places.
func ComputeScoreSetHash(scores map[string]float64, nonce string) string {
	data := nonce

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		data += fmt.Sprintf("|%s:%.6f", id, scores[id])
	}
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
