package knowledge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// KnowledgeBase holds the curated items recommendations are drawn from
type KnowledgeBase struct {
	Courses  map[string][]candidate.Course `json:"courses"`
	Advisors []candidate.Advisor           `json:"advisors"`
	Practice []candidate.Practice          `json:"practice"`
	JDs      []candidate.JobPosting        `json:"jds"`
}

// Empty returns a knowledge base with every collection initialized
func Empty() *KnowledgeBase {
	return &KnowledgeBase{
		Courses:  map[string][]candidate.Course{},
		Advisors: []candidate.Advisor{},
		Practice: []candidate.Practice{},
		JDs:      []candidate.JobPosting{},
	}
}

// Load reads the knowledge base from a JSON file. A missing file yields an
// empty knowledge base.
func Load(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	kb := Empty()
	if err := json.Unmarshal(data, kb); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	kb.fillNil()
	return kb, nil
}

// Save writes the knowledge base atomically: the data goes to a temp file in
// the same directory which is then renamed over path. An existing file is
// kept as path.bak.<timestamp>.
func (kb *KnowledgeBase) Save(path string) error {
	data, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create knowledge base directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102150405"))
		if err := copyFile(path, backup); err != nil {
			return fmt.Errorf("failed to back up knowledge base: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace knowledge base: %w", err)
	}
	return nil
}

// Candidates flattens every item into normalized candidates. Majors are
// visited in sorted order so the result is deterministic.
func (kb *KnowledgeBase) Candidates() []candidate.Candidate {
	majors := make([]string, 0, len(kb.Courses))
	for major := range kb.Courses {
		majors = append(majors, major)
	}
	sort.Strings(majors)

	var out []candidate.Candidate
	for _, major := range majors {
		for _, c := range kb.Courses[major] {
			out = append(out, candidate.FromCourse(major, c))
		}
	}
	for _, p := range kb.Practice {
		out = append(out, candidate.FromPractice(p))
	}
	for _, j := range kb.JDs {
		out = append(out, candidate.FromJob(j))
	}
	for _, a := range kb.Advisors {
		out = append(out, candidate.FromAdvisor(a))
	}
	return out
}

// Counts returns the number of items per kind
func (kb *KnowledgeBase) Counts() map[candidate.Kind]int {
	courses := 0
	for _, list := range kb.Courses {
		courses += len(list)
	}
	return map[candidate.Kind]int{
		candidate.KindCourse:   courses,
		candidate.KindAdvisor:  len(kb.Advisors),
		candidate.KindPractice: len(kb.Practice),
		candidate.KindJob:      len(kb.JDs),
	}
}

func (kb *KnowledgeBase) fillNil() {
	if kb.Courses == nil {
		kb.Courses = map[string][]candidate.Course{}
	}
	if kb.Advisors == nil {
		kb.Advisors = []candidate.Advisor{}
	}
	if kb.Practice == nil {
		kb.Practice = []candidate.Practice{}
	}
	if kb.JDs == nil {
		kb.JDs = []candidate.JobPosting{}
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
