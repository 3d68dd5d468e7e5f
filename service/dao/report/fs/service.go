// Package fs archives trial reports as JSON files on any afs-supported storage.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"

	"github.com/viant/memfit/model"
	"github.com/viant/memfit/service/dao"
	"github.com/viant/memfit/service/dao/criteria"
	"github.com/viant/memfit/service/dao/report"
)

const fileExt = ".json"

// Service stores one <id>.json file per report under baseURL.
type Service struct {
	baseURL string
	fs      afs.Service
	logger  log.Logger
	mu      sync.RWMutex
}

var _ dao.Service[string, model.Report] = (*Service)(nil)

// Option configures the store
type Option func(*Service)

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger sets the logger reporting unreadable files
func WithLogger(logger log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates the store, creating baseURL when it does not exist.  A plain
// path is treated as a local directory.
func New(ctx context.Context, baseURL string, options ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, model.InvalidConfigurationf("report store location cannot be empty")
	}
	s := &Service{
		baseURL: url.Normalize(baseURL, file.Scheme),
		logger:  log.NewNopLogger(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	exists, _ := s.fs.Exists(ctx, s.baseURL)
	if !exists {
		if err := s.fs.Create(ctx, s.baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create report location %s: %w", s.baseURL, err)
		}
	}
	return s, nil
}

// Save writes r to <baseURL>/<id>.json.
func (s *Service) Save(ctx context.Context, r *model.Report) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if err := validateID(r.ID); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", r.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.reportURL(r.ID)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save report to %s: %w", location, err)
	}
	return nil
}

// Load reads the report with id.
func (s *Service) Load(ctx context.Context, id string) (*model.Report, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	location := s.reportURL(id)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check report %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", id, err)
	}
	ret := &model.Report{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}
	return ret, nil
}

// Delete removes the report with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.reportURL(id)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to check report %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}
	if err = s.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	return nil
}

// List returns the archived reports matching parameters, oldest first.
// Unreadable files are logged and skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports in %s: %w", s.baseURL, err)
	}
	var ret []*model.Report
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), fileExt) {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			level.Warn(s.logger).Log("msg", "failed to read report", "url", object.URL(), "err", err)
			continue
		}
		r := &model.Report{}
		if err := json.Unmarshal(data, r); err != nil {
			level.Warn(s.logger).Log("msg", "failed to unmarshal report", "url", object.URL(), "err", err)
			continue
		}
		if !criteria.MatchReport(r, parameters) {
			continue
		}
		ret = append(ret, r)
	}
	sort.SliceStable(ret, func(i, j int) bool { return report.Less(ret[i], ret[j]) })
	return ret, nil
}

func (s *Service) reportURL(id string) string {
	return url.Join(s.baseURL, id+fileExt)
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id != path.Clean(id) {
		return dao.ErrInvalidID
	}
	return nil
}
