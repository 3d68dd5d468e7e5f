// Package memory keeps trial reports in process memory.
package memory

import (
	"github.com/viant/memfit/model"
	"github.com/viant/memfit/service/dao"
	"github.com/viant/memfit/service/dao/criteria"
	"github.com/viant/memfit/service/dao/report"
	"github.com/viant/memfit/service/dao/store"
)

// Service is a thread-safe in-memory report store.
type Service struct {
	*store.MemoryStore[string, model.Report]
}

var _ dao.Service[string, model.Report] = (*Service)(nil)

// New creates an empty store.
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, model.Report](
			func(r *model.Report) string { return r.ID },
			store.WithMatcher[string, model.Report](criteria.MatchReport),
			store.WithOrder[string, model.Report](report.Less),
		),
	}
}
