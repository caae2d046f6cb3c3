// Package lessons carries the course notes baked into the binary, one
// markdown file per topic, in reading order.
package lessons

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// Lesson is one note: its file name without extension, the first heading
// and the raw markdown body.
type Lesson struct {
	ID    string
	Title string
	Body  string
}

// List returns every lesson in reading order.
func List() ([]Lesson, error) {
	var all []Lesson
	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		body, err := files.ReadFile(path)
		if err != nil {
			return fmt.Errorf("lessons: cannot read embedded %s: %w", path, err)
		}
		id := strings.TrimSuffix(path, ".md")
		all = append(all, Lesson{ID: id, Title: title(string(body), id), Body: string(body)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// Load finds a lesson by its ID or any unambiguous prefix of it, so "02"
// resolves to 02-pid-control.
func Load(id string) (Lesson, error) {
	id = strings.TrimSuffix(id, ".md")
	all, err := List()
	if err != nil {
		return Lesson{}, err
	}
	for _, lesson := range all {
		if lesson.ID == id {
			return lesson, nil
		}
	}
	var matches []Lesson
	for _, lesson := range all {
		if strings.HasPrefix(lesson.ID, id) {
			matches = append(matches, lesson)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Lesson{}, fmt.Errorf("lessons: unknown lesson %q", id)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.ID
	}
	return Lesson{}, fmt.Errorf("lessons: %q is ambiguous between %s", id, strings.Join(names, ", "))
}

func title(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
