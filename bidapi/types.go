// Package bidapi defines the plain-data shapes exchanged between the bidding
// engine and its hosting application: operation requests/responses, signed
// selection record envelopes, and legacy status code mappings. No wire
// transport is implied; all of these travel as in-process values or JSON.
package bidapi

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cloudx-io/openbidding/bidapi/parsing"
	"github.com/cloudx-io/openbidding/core"
)

// SelectionMode selects between automatic and manual winner selection.
type SelectionMode string

const (
	SelectionModeAuto   SelectionMode = "auto"
	SelectionModeManual SelectionMode = "manual"
)

// SelectionRequest is the input to engine winner-selection processing.
type SelectionRequest struct {
	Type             string                `json:"type"`
	Notice           *core.BiddingNotice   `json:"notice"`
	Participations   []*core.Participation `json:"participations"`
	Role             core.Role             `json:"role"`
	Mode             SelectionMode         `json:"mode"`
	ParticipationID  string                `json:"participation_id,omitempty"` // manual mode only
	ConfirmOverwrite bool                  `json:"confirm_overwrite"`
	Timestamp        time.Time             `json:"timestamp"`
}

// SelectionResponse is the outcome of winner-selection processing.
type SelectionResponse struct {
	Type           string              `json:"type"`
	Success        bool                `json:"success"`
	Message        string              `json:"message"`
	Winner         *core.Participation `json:"winner,omitempty"`
	RunnerUp       *core.Participation `json:"runner_up,omitempty"`
	UnevaluatedIDs []string            `json:"unevaluated_ids,omitempty"`
	Record         SelectionRecordCOSE `json:"record,omitempty"`
	ProcessingTime int64               `json:"processing_time_ms"`
}

// ParticipationWithoutSupplier is a participation stripped of supplier
// identity for embedding in selection records, so records can be shared with
// losing suppliers without leaking who won.
type ParticipationWithoutSupplier struct {
	ID              string   `json:"id"`
	UnitPrice       float64  `json:"unit_price"`
	Quantity        float64  `json:"quantity"`
	TotalAmount     float64  `json:"total_amount"`
	EvaluationScore *float64 `json:"evaluation_score,omitempty"`
}

// StripSupplier converts a participation to its identity-free record form.
func StripSupplier(p *core.Participation) *ParticipationWithoutSupplier {
	if p == nil {
		return nil
	}
	return &ParticipationWithoutSupplier{
		ID:              p.ID,
		UnitPrice:       p.UnitPrice,
		Quantity:        p.Quantity,
		TotalAmount:     p.TotalAmount,
		EvaluationScore: p.EvaluationScore,
	}
}

// SelectionRecordData is the payload embedded in a signed selection record.
// The hashes commit to the participations and score set the selection was
// ranked over without disclosing them; the nonces make the hashes
// unlinkable across records.
type SelectionRecordData struct {
	RecordID               string                        `json:"record_id"`
	NoticeHash             string                        `json:"notice_hash"`
	BidNumber              string                        `json:"bid_number"`
	Mode                   SelectionMode                 `json:"mode"`
	ParticipationHashes    []string                      `json:"participation_hashes"`
	ScoreSetHash           string                        `json:"score_set_hash"`
	Winner                 *ParticipationWithoutSupplier `json:"winner,omitempty"`
	RunnerUp               *ParticipationWithoutSupplier `json:"runner_up,omitempty"`
	ParticipationHashNonce string                        `json:"participation_hash_nonce"`
	NoticeNonce            string                        `json:"notice_nonce"`
	ScoreSetNonce          string                        `json:"score_set_nonce"`
	Timestamp              time.Time                     `json:"timestamp"`
}

// SelectionRecordCOSE is a COSE_Sign1-signed selection record (raw CBOR bytes).
type SelectionRecordCOSE []byte

// EncodeBase64 encodes the signed record for JSON or URL transport.
func (r SelectionRecordCOSE) EncodeBase64() string {
	return base64.StdEncoding.EncodeToString(r)
}

// DecodeSelectionRecordBase64 decodes a base64-encoded signed record.
func DecodeSelectionRecordBase64(s string) (SelectionRecordCOSE, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode record base64: %w", err)
	}
	return SelectionRecordCOSE(raw), nil
}

// ParsePayload extracts and decodes the record payload without verifying the
// signature. Use validation.ValidateSelectionRecord when authenticity matters.
func (r SelectionRecordCOSE) ParsePayload() (*SelectionRecordData, error) {
	payload, err := parsing.ExtractCOSEPayload(r)
	if err != nil {
		return nil, fmt.Errorf("extract record payload: %w", err)
	}
	var data SelectionRecordData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal record payload: %w", err)
	}
	return &data, nil
}

// SelectionRecordCOSEGzip is a gzip-compressed signed selection record, the
// format used when records ride along win/loss notifications.
type SelectionRecordCOSEGzip []byte

// Compress gzips the signed record for compact transport.
func (r SelectionRecordCOSE) Compress() (SelectionRecordCOSEGzip, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(r); err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("finalize compressed record: %w", err)
	}
	return SelectionRecordCOSEGzip(buf.Bytes()), nil
}

// Decompress restores the raw signed record from its gzipped form.
func (g SelectionRecordCOSEGzip) Decompress() (SelectionRecordCOSE, error) {
	gz, err := gzip.NewReader(bytes.NewReader(g))
	if err != nil {
		return nil, fmt.Errorf("open compressed record: %w", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompress record: %w", err)
	}
	return SelectionRecordCOSE(raw), nil
}

// EncodeBase64 encodes the gzipped record for JSON transport.
func (g SelectionRecordCOSEGzip) EncodeBase64() string {
	return base64.StdEncoding.EncodeToString(g)
}

// DecodeSelectionRecordGzipBase64 decodes a base64-encoded gzipped record.
func DecodeSelectionRecordGzipBase64(s string) (SelectionRecordCOSEGzip, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode gzipped record base64: %w", err)
	}
	return SelectionRecordCOSEGzip(raw), nil
}
