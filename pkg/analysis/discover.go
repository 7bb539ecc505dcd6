package analysis

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	resultFilePrefix = "performance_results"
	resultFileSuffix = ".json"
)

// ResultFile is one discovered collector output, with the run tag
// extracted from its filename.
type ResultFile struct {
	Path string
	Tag  string
}

// DiscoverResultFiles finds every performance_results_<tag>.json under
// dir, sorted by path so repeated runs report in a stable order.
func DiscoverResultFiles(dir string) ([]ResultFile, error) {
	pattern := filepath.Join(dir, resultFilePrefix+"_*"+resultFileSuffix)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", dir)
	}
	sort.Strings(paths)
	files := make([]ResultFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, ResultFile{Path: p, Tag: TagFromFilename(p)})
	}
	return files, nil
}

// TagFromFilename extracts the run tag from a results file path, or ""
// when the name carries none.
func TagFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), resultFileSuffix)
	if !strings.HasPrefix(base, resultFilePrefix+"_") {
		return ""
	}
	return strings.TrimPrefix(base, resultFilePrefix+"_")
}
