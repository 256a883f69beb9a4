package roster

import (
	"context"
	"fmt"

	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
)

// Registry mutations. Each applies the pure registry operation, rewrites
// affected employee records where the cascade requires it, persists the
// new definition set plus every touched record, and reverts the whole
// edit on any persistence failure.

func (s *Service) AddDefinition(ctx context.Context, name, group string) (registry.DocumentDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, added, err := registry.Add(s.definitions, name, group)
	if err != nil {
		return registry.DocumentDefinition{}, err
	}
	if err := s.replaceDefinitionsLocked(ctx, defs); err != nil {
		return registry.DocumentDefinition{}, err
	}
	return added, nil
}

func (s *Service) ToggleDefinitionRequired(ctx context.Context, id string) (registry.DocumentDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, toggled, err := registry.ToggleRequired(s.definitions, id)
	if err != nil {
		return registry.DocumentDefinition{}, err
	}
	if err := s.replaceDefinitionsLocked(ctx, defs); err != nil {
		return registry.DocumentDefinition{}, err
	}
	return toggled, nil
}

// RenameDefinition renames a registry entry and rewrites the display
// type on every record holding a file for it, so renames do not orphan
// existing uploads. Legacy name-matched files are claimed by the
// definition id during the rewrite.
func (s *Service) RenameDefinition(ctx context.Context, id, newName string) (CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := registry.ByID(s.definitions, id)
	if !ok {
		return CascadeResult{}, registry.ErrNotFound
	}
	defs, renamed, err := registry.Rename(s.definitions, id, newName)
	if err != nil {
		return CascadeResult{}, err
	}

	rewrite := func(emp *personnel.Employee) bool {
		touched := false
		for i := range emp.Documents {
			doc := &emp.Documents[i]
			if doc.DefinitionID == id || (doc.DefinitionID == "" && doc.Type == old.Name) {
				doc.DefinitionID = id
				doc.Type = renamed.Name
				touched = true
			}
		}
		return touched
	}
	return s.applyCascadeLocked(ctx, defs, rewrite)
}

// DeleteDefinition removes a registry entry. Files uploaded for it stay
// on their records as tolerated orphans; the affected set reports which
// records now hold one.
func (s *Service) DeleteDefinition(ctx context.Context, id string) (CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := registry.ByID(s.definitions, id)
	if !ok {
		return CascadeResult{}, registry.ErrNotFound
	}
	defs, _, err := registry.Delete(s.definitions, id)
	if err != nil {
		return CascadeResult{}, err
	}

	var affected []string
	for i := range s.employees {
		if _, has := s.employees[i].DocumentFor(removed.ID, removed.Name); has {
			affected = append(affected, s.employees[i].ID)
		}
	}
	if err := s.replaceDefinitionsLocked(ctx, defs); err != nil {
		return CascadeResult{}, err
	}
	return CascadeResult{Definitions: defs, AffectedEmployeeIDs: affected}, nil
}

// RenameCategory retargets the category on its definitions and on every
// affected record's files.
func (s *Service) RenameCategory(ctx context.Context, oldName, newName string) (CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, _, err := registry.RenameCategory(s.definitions, oldName, newName)
	if err != nil {
		return CascadeResult{}, err
	}

	rewrite := func(emp *personnel.Employee) bool {
		touched := false
		for i := range emp.Documents {
			if emp.Documents[i].Group == oldName {
				emp.Documents[i].Group = newName
				touched = true
			}
		}
		return touched
	}
	return s.applyCascadeLocked(ctx, defs, rewrite)
}

// DeleteCategory removes every definition in the category. Uploaded
// files survive as orphans, like a single-definition delete.
func (s *Service) DeleteCategory(ctx context.Context, name string) (CascadeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs, removed, err := registry.DeleteCategory(s.definitions, name)
	if err != nil {
		return CascadeResult{}, err
	}

	var affected []string
	for i := range s.employees {
		for _, def := range removed {
			if _, has := s.employees[i].DocumentFor(def.ID, def.Name); has {
				affected = append(affected, s.employees[i].ID)
				break
			}
		}
	}
	if err := s.replaceDefinitionsLocked(ctx, defs); err != nil {
		return CascadeResult{}, err
	}
	return CascadeResult{Definitions: defs, AffectedEmployeeIDs: affected}, nil
}

// applyCascadeLocked installs a new definition set, applies the rewrite
// to every record, and persists definitions plus each touched record.
// Any failure restores both collections to their pre-edit snapshots.
func (s *Service) applyCascadeLocked(ctx context.Context, defs []registry.DocumentDefinition, rewrite func(*personnel.Employee) bool) (CascadeResult, error) {
	prevDefs := s.definitions
	prevEmployees := s.snapshotEmployeesLocked()

	s.definitions = defs
	var affected []string
	for i := range s.employees {
		if rewrite(&s.employees[i]) {
			affected = append(affected, s.employees[i].ID)
		}
	}

	revert := func() {
		s.definitions = prevDefs
		s.employees = prevEmployees
	}

	if err := s.store.ReplaceDefinitions(ctx, defs); err != nil {
		revert()
		return CascadeResult{}, fmt.Errorf("persist definitions: %w", err)
	}
	for i := range s.employees {
		if !containsID(affected, s.employees[i].ID) {
			continue
		}
		if err := s.store.SaveEmployee(ctx, s.employees[i]); err != nil {
			revert()
			return CascadeResult{}, fmt.Errorf("persist cascade for %s: %w", s.employees[i].ID, err)
		}
	}
	return CascadeResult{Definitions: defs, AffectedEmployeeIDs: affected}, nil
}

func (s *Service) replaceDefinitionsLocked(ctx context.Context, defs []registry.DocumentDefinition) error {
	prev := s.definitions
	s.definitions = defs
	if err := s.store.ReplaceDefinitions(ctx, defs); err != nil {
		s.definitions = prev
		return fmt.Errorf("persist definitions: %w", err)
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
