package siteassets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
	"github.com/ericfisherdev/gagesite/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.PartialSource = (*FSSource)(nil)
	_ driven.StaffSource   = (*FSSource)(nil)
)

// FSSource reads site assets from a filesystem rooted at the site directory.
type FSSource struct {
	fsys     fs.FS
	siteURLs []string
}

// NewFSSource creates an FSSource over fsys. siteURLs are the public
// addresses of the same site: absolute refs under one of them are read from
// fsys. Empty entries are ignored.
func NewFSSource(fsys fs.FS, siteURLs ...string) *FSSource {
	s := &FSSource{fsys: fsys}
	for _, u := range siteURLs {
		if u == "" {
			continue
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		s.siteURLs = append(s.siteURLs, u)
	}
	return s
}

// FetchPartial reads the partial at ref.
func (s *FSSource) FetchPartial(_ context.Context, ref string) ([]byte, error) {
	name, err := s.sitePath(ref)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, wrapNotFound(name, err)
	}
	return data, nil
}

// LoadStaff reads and decodes the staff list at ref.
func (s *FSSource) LoadStaff(_ context.Context, ref string) ([]model.StaffRecord, error) {
	name, err := s.sitePath(ref)
	if err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, wrapNotFound(name, err)
	}
	defer f.Close()

	return decodeStaff(f)
}

// sitePath converts a site ref to an fs.FS path. Absolute URLs outside the
// site's public addresses and refs escaping the site root are rejected.
func (s *FSSource) sitePath(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		local, ok := s.localRef(ref)
		if !ok {
			return "", fmt.Errorf("remote ref %q cannot be read from the site directory", ref)
		}
		ref = local
	}
	name := path.Clean(strings.TrimPrefix(ref, "/"))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid site path %q", ref)
	}
	return name, nil
}

func (s *FSSource) localRef(ref string) (string, bool) {
	for _, base := range s.siteURLs {
		if rest, ok := strings.CutPrefix(ref, base); ok {
			return rest, true
		}
	}
	return "", false
}

func wrapNotFound(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, driven.ErrAssetNotFound)
	}
	return fmt.Errorf("read %s: %w", name, err)
}
