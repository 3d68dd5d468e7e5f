// Package report holds what the report stores share.
package report

import "github.com/viant/memfit/model"

// Less orders reports by start time, then by ID.
func Less(a, b *model.Report) bool {
	if !a.StartedAt.Equal(b.StartedAt) {
		return a.StartedAt.Before(b.StartedAt)
	}
	return a.ID < b.ID
}
