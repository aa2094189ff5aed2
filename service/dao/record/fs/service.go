package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/service/dao"
	"github.com/viant/custard/service/dao/criteria"
)

// Service persists task records as JSON documents under a base URL, one
// document per task at <base>/<crate>/<task>.json.
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Records = (*Service)(nil)

// Save writes the record document.
func (s *Service) Save(ctx context.Context, aRecord *record.Record) error {
	if aRecord == nil {
		return dao.ErrNilEntity
	}
	if aRecord.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(aRecord)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	URL, err := s.recordURL(aRecord.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save record %s: %w", URL, err)
	}
	return nil
}

// Load reads the record document for id.
func (s *Service) Load(ctx context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	URL, err := s.recordURL(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check record %s: %w", URL, err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", URL, err)
	}
	ret := &record.Record{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", URL, err)
	}
	return ret, nil
}

// Delete removes the record document for id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	URL, err := s.recordURL(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check record %s: %w", URL, err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	return s.fs.Delete(ctx, URL)
}

// List reads every record document below the base URL.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	var ret []*record.Record
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			slog.Warn("Failed to read record", slog.String("url", object.URL()), log.Error(err))
			continue
		}
		aRecord := &record.Record{}
		if err = json.Unmarshal(data, aRecord); err != nil {
			slog.Warn("Failed to decode record", slog.String("url", object.URL()), log.Error(err))
			continue
		}
		if criteria.Match(aRecord, parameters) {
			ret = append(ret, aRecord)
		}
	}
	return ret, nil
}

// recordURL maps id below the base URL; ids escaping it are rejected.
func (s *Service) recordURL(id string) (string, error) {
	cleaned := path.Clean("/" + id)[1:]
	if cleaned == "" || cleaned != path.Clean(id) {
		return "", fmt.Errorf("%w: %q", dao.ErrInvalidID, id)
	}
	return url.Join(s.baseURL, cleaned+".json"), nil
}

// New creates a record store rooted at baseURL (any afs supported scheme).
func New(ctx context.Context, fs afs.Service, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create record directory: %w", err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
