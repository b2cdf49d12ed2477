// Package migrations embeds the schema history. Every up file opens with a
// header naming its revision id and the revision it builds on:
//
//	-- revision: 3b03f95f40f8
//	-- revises: c93fba2ae6b4
package migrations

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.sql
var FS embed.FS

type Revision struct {
	Version uint
	Name    string
	ID      string
	Parent  string
}

// Chain reads the revision headers of every embedded up migration, ordered by version.
func Chain() ([]Revision, error) {
	return chainFrom(FS)
}

func chainFrom(fsys fs.FS) ([]Revision, error) {
	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}

	revs := make([]Revision, 0, len(files))
	for _, name := range files {
		rev, err := readRevision(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		revs = append(revs, rev)
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i].Version < revs[j].Version })
	return revs, nil
}

func readRevision(fsys fs.FS, name string) (Revision, error) {
	base := strings.TrimSuffix(path.Base(name), ".up.sql")
	num, label, ok := strings.Cut(base, "_")
	if !ok {
		return Revision{}, fmt.Errorf("file name must be <version>_<name>.up.sql")
	}
	version, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Revision{}, fmt.Errorf("bad version %q: %w", num, err)
	}
	rev := Revision{Version: uint(version), Name: label}

	f, err := fsys.Open(name)
	if err != nil {
		return Revision{}, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "--") {
			break
		}
		key, value, found := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "--")), ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "revision":
			rev.ID = strings.TrimSpace(value)
		case "revises":
			rev.Parent = strings.TrimSpace(value)
		}
	}
	if err := sc.Err(); err != nil {
		return Revision{}, err
	}
	if rev.ID == "" {
		return Revision{}, fmt.Errorf("missing revision header")
	}
	return rev, nil
}

// Verify checks that revs form one linear history: versions are 1..n with
// no gaps, ids are unique, the first revision has no parent and each later
// one revises its predecessor.
func Verify(revs []Revision) error {
	if len(revs) == 0 {
		return fmt.Errorf("no migrations found")
	}
	seen := make(map[string]uint, len(revs))
	for i, rev := range revs {
		if rev.Version != uint(i+1) {
			return fmt.Errorf("migration %d (%s): expected version %d", rev.Version, rev.ID, i+1)
		}
		if prev, dup := seen[rev.ID]; dup {
			return fmt.Errorf("revision %s used by versions %d and %d", rev.ID, prev, rev.Version)
		}
		seen[rev.ID] = rev.Version

		if i == 0 {
			if rev.Parent != "" {
				return fmt.Errorf("base revision %s revises unknown %s", rev.ID, rev.Parent)
			}
			continue
		}
		if want := revs[i-1].ID; rev.Parent != want {
			return fmt.Errorf("revision %s revises %q, expected %q", rev.ID, rev.Parent, want)
		}
	}
	return nil
}

// Head is the id of the newest revision.
func Head(revs []Revision) string {
	if len(revs) == 0 {
		return ""
	}
	return revs[len(revs)-1].ID
}
