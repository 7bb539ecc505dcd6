package analysis

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := ioutil.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverResultFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "lmbs")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	touch(t, dir, "performance_results_cd.json")
	touch(t, dir, "performance_results_ab.json")
	touch(t, dir, "performance_results.json") // untagged, not discovered
	touch(t, dir, "unrelated.json")

	files, err := DiscoverResultFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	var tags []string
	for _, f := range files {
		tags = append(tags, f.Tag)
	}
	if d := cmp.Diff([]string{"ab", "cd"}, tags); d != "" {
		t.Errorf("discovered tags mismatch (-want +got):\n%s", d)
	}
}

func TestDiscoverResultFilesEmptyDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "lmbs")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	files, err := DiscoverResultFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files in an empty dir", len(files))
	}
}

func TestTagFromFilename(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"results/performance_results_jd.json", "jd"},
		{"performance_results_run_2.json", "run_2"},
		{"performance_results.json", ""},
		{"something_else.json", ""},
	}
	for _, c := range cases {
		if got := TagFromFilename(c.path); got != c.want {
			t.Errorf("%s: got %q, want %q", c.path, got, c.want)
		}
	}
}
