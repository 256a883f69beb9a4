// Package registry holds the configurable document-definition set: which
// administrative documents the school tracks, which category each belongs
// to, and whether it counts toward record completeness. All operations are
// pure: they take a definition slice and return a new one, leaving cascade
// handling to the caller.
package registry

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName    = errors.New("document definition name already exists")
	ErrNotFound         = errors.New("document definition not found")
	ErrCategoryNotFound = errors.New("document category not found")
	ErrEmptyName        = errors.New("name must not be empty")
)

type DocumentDefinition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Group      string `json:"group"`
	IsRequired bool   `json:"isRequired"`
}

// Add appends a new definition. New documents start optional; the
// required flag is a separate toggle.
func Add(defs []DocumentDefinition, name, group string) ([]DocumentDefinition, DocumentDefinition, error) {
	name = strings.TrimSpace(name)
	group = strings.TrimSpace(group)
	if name == "" {
		return nil, DocumentDefinition{}, ErrEmptyName
	}
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return nil, DocumentDefinition{}, ErrDuplicateName
		}
	}
	def := DocumentDefinition{
		ID:         uuid.NewString(),
		Name:       name,
		Group:      group,
		IsRequired: false,
	}
	out := make([]DocumentDefinition, 0, len(defs)+1)
	out = append(out, defs...)
	out = append(out, def)
	return out, def, nil
}

func Rename(defs []DocumentDefinition, id, newName string) ([]DocumentDefinition, DocumentDefinition, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, DocumentDefinition{}, ErrEmptyName
	}
	for _, d := range defs {
		if d.ID != id && strings.EqualFold(d.Name, newName) {
			return nil, DocumentDefinition{}, ErrDuplicateName
		}
	}
	out := make([]DocumentDefinition, len(defs))
	copy(out, defs)
	for i := range out {
		if out[i].ID == id {
			out[i].Name = newName
			return out, out[i], nil
		}
	}
	return nil, DocumentDefinition{}, ErrNotFound
}

func Delete(defs []DocumentDefinition, id string) ([]DocumentDefinition, DocumentDefinition, error) {
	out := make([]DocumentDefinition, 0, len(defs))
	var removed DocumentDefinition
	found := false
	for _, d := range defs {
		if d.ID == id {
			removed = d
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		return nil, DocumentDefinition{}, ErrNotFound
	}
	return out, removed, nil
}

func ToggleRequired(defs []DocumentDefinition, id string) ([]DocumentDefinition, DocumentDefinition, error) {
	out := make([]DocumentDefinition, len(defs))
	copy(out, defs)
	for i := range out {
		if out[i].ID == id {
			out[i].IsRequired = !out[i].IsRequired
			return out, out[i], nil
		}
	}
	return nil, DocumentDefinition{}, ErrNotFound
}

// Categories returns the distinct group names in first-appearance order.
func Categories(defs []DocumentDefinition) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range defs {
		if !seen[d.Group] {
			seen[d.Group] = true
			out = append(out, d.Group)
		}
	}
	return out
}

// RenameCategory retargets every definition in the category to the new
// group name.
func RenameCategory(defs []DocumentDefinition, oldName, newName string) ([]DocumentDefinition, int, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, 0, ErrEmptyName
	}
	out := make([]DocumentDefinition, len(defs))
	copy(out, defs)
	moved := 0
	for i := range out {
		if out[i].Group == oldName {
			out[i].Group = newName
			moved++
		}
	}
	if moved == 0 {
		return nil, 0, ErrCategoryNotFound
	}
	return out, moved, nil
}

// DeleteCategory removes every definition in the category and returns
// the removed definitions.
func DeleteCategory(defs []DocumentDefinition, name string) ([]DocumentDefinition, []DocumentDefinition, error) {
	out := make([]DocumentDefinition, 0, len(defs))
	var removed []DocumentDefinition
	for _, d := range defs {
		if d.Group == name {
			removed = append(removed, d)
			continue
		}
		out = append(out, d)
	}
	if len(removed) == 0 {
		return nil, nil, ErrCategoryNotFound
	}
	return out, removed, nil
}

// GroupByCategory partitions definitions by group, preserving both
// category first-appearance order and definition order within each group.
func GroupByCategory(defs []DocumentDefinition) ([]string, map[string][]DocumentDefinition) {
	order := Categories(defs)
	grouped := make(map[string][]DocumentDefinition, len(order))
	for _, d := range defs {
		grouped[d.Group] = append(grouped[d.Group], d)
	}
	return order, grouped
}

// ByID returns the definition with the given id.
func ByID(defs []DocumentDefinition, id string) (DocumentDefinition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return DocumentDefinition{}, false
}

// RequiredCount counts definitions flagged required.
func RequiredCount(defs []DocumentDefinition) int {
	n := 0
	for _, d := range defs {
		if d.IsRequired {
			n++
		}
	}
	return n
}
