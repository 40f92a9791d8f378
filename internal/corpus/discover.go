package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Selection narrows which judge folders are returned.
type Selection struct {
	// Skip drops this many judges from the front of the sorted list.
	Skip int
	// Only, when non-empty, restricts the result to these folder names.
	Only []string
}

// DiscoverJudges lists the judge folders directly under root in name order.
// Plain files are ignored; symlinks to directories count as judges.
func DiscoverJudges(root string, sel Selection) ([]Judge, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input root: %w", err)
	}

	judges := make([]Judge, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		judges = append(judges, Judge{Name: entry.Name(), Path: path})
	}
	sort.Slice(judges, func(i, j int) bool { return judges[i].Name < judges[j].Name })

	if sel.Skip > 0 {
		if sel.Skip >= len(judges) {
			return nil, nil
		}
		judges = judges[sel.Skip:]
	}

	if len(sel.Only) == 0 {
		return judges, nil
	}

	byName := make(map[string]Judge, len(judges))
	for _, judge := range judges {
		byName[judge.Name] = judge
	}
	selected := make([]Judge, 0, len(sel.Only))
	var missing []string
	seen := make(map[string]struct{}, len(sel.Only))
	for _, name := range sel.Only {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		judge, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, judge)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("judge folders not found under %s: %s", root, strings.Join(missing, ", "))
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Name < selected[j].Name })
	return selected, nil
}
