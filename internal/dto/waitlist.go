package dto

import (
	"time"

	"github.com/jekabolt/grbpwr-waitlist/internal/entity"
	"github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
)

// WaitlistEntry is the JSON shape of an entry: core fields with extension fields merged in.
type WaitlistEntry map[string]any

// WaitlistStatus is the JSON shape of the public status lookup.
type WaitlistStatus struct {
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
}

func withExtension(out WaitlistEntry, ext entity.ExtensionValues) WaitlistEntry {
	for k, v := range ext {
		// core fields always win
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func ConvertEntityWaitlistEntry(e entity.WaitlistEntry) WaitlistEntry {
	out := WaitlistEntry{
		"id":          e.Id,
		"email":       e.Email,
		"status":      string(e.Status),
		"requestedAt": e.RequestedAt,
		"processedAt": nil,
		"processedBy": nil,
	}
	if e.ProcessedAt.Valid {
		out["processedAt"] = e.ProcessedAt.Time
	}
	if e.ProcessedBy.Valid {
		out["processedBy"] = e.ProcessedBy.String
	}
	return withExtension(out, e.Extension)
}

func ConvertEntityWaitlistEntries(entries []entity.WaitlistEntry) []WaitlistEntry {
	out := make([]WaitlistEntry, len(entries))
	for i, e := range entries {
		out[i] = ConvertEntityWaitlistEntry(e)
	}
	return out
}

func ConvertJoinResult(res *waitlist.JoinResult) WaitlistEntry {
	out := WaitlistEntry{
		"id":          res.Id,
		"email":       res.Email,
		"status":      string(res.Status),
		"requestedAt": res.RequestedAt,
	}
	return withExtension(out, res.Fields)
}

func ConvertStatusResult(res *waitlist.StatusResult) WaitlistStatus {
	return WaitlistStatus{
		Status:      string(res.Status),
		RequestedAt: res.RequestedAt,
	}
}
