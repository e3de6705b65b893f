package bidapi

import (
	"fmt"

	"github.com/cloudx-io/openbidding/core"
)

// StatusParentCode is the parent code under which every bidding lifecycle
// status is filed in legacy code tables.
const StatusParentCode = "BIDDING_STATUS"

// StatusCode is the nested {parentCode, childCode} status shape some external
// systems still require. Internally the engine uses the flat
// core.BiddingStatus; this mapping exists only at the serialization boundary.
type StatusCode struct {
	ParentCode string `json:"parentCode"`
	ChildCode  string `json:"childCode"`
}

// StatusToCode converts a flat status to its nested legacy code.
func StatusToCode(s core.BiddingStatus) StatusCode {
	return StatusCode{
		ParentCode: StatusParentCode,
		ChildCode:  string(s),
	}
}

// StatusFromCode converts a nested legacy code back to the flat status.
func StatusFromCode(c StatusCode) (core.BiddingStatus, error) {
	if c.ParentCode != StatusParentCode {
		return "", fmt.Errorf("unknown status parent code: %q", c.ParentCode)
	}
	status := core.BiddingStatus(c.ChildCode)
	if !core.ValidBiddingStatus(status) {
		return "", fmt.Errorf("unknown status child code: %q", c.ChildCode)
	}
	return status, nil
}
