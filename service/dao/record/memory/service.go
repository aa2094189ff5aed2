package memory

import (
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/service/dao"
	"github.com/viant/custard/service/dao/criteria"
	"github.com/viant/custard/service/dao/store"
)

// Service keeps task records in memory.
type Service struct {
	*store.MemoryStore[string, record.Record]
}

var _ dao.Records = (*Service)(nil)

// New creates an empty in-memory record store.
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, record.Record](
			func(r *record.Record) string { return r.ID },
			(*record.Record).Clone,
			criteria.Match,
		),
	}
}
