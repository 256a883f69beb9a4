package personnel

import "simpeg/internal/domain/registry"

// ChecklistItem pairs a registry definition with the record's document
// for it. Definitions without an upload appear as missing placeholders.
type ChecklistItem struct {
	DefinitionID string       `json:"definitionId"`
	Name         string       `json:"name"`
	Group        string       `json:"group"`
	IsRequired   bool         `json:"isRequired"`
	Document     DocumentFile `json:"document"`
}

// ChecklistGroup is one category of the checklist in registry order.
type ChecklistGroup struct {
	Category string          `json:"category"`
	Items    []ChecklistItem `json:"items"`
}

// Checklist merges the registry with a record's documents, grouped by
// category. Documents that no longer match any definition are returned
// separately: they stay retrievable but are no longer listed as
// requirements.
func Checklist(emp *Employee, defs []registry.DocumentDefinition) ([]ChecklistGroup, []DocumentFile) {
	order, grouped := registry.GroupByCategory(defs)

	claimed := map[string]bool{}
	groups := make([]ChecklistGroup, 0, len(order))
	for _, category := range order {
		group := ChecklistGroup{Category: category}
		for _, def := range grouped[category] {
			item := ChecklistItem{
				DefinitionID: def.ID,
				Name:         def.Name,
				Group:        def.Group,
				IsRequired:   def.IsRequired,
				Document: DocumentFile{
					DefinitionID: def.ID,
					Type:         def.Name,
					Status:       DocStatusMissing,
					Group:        def.Group,
				},
			}
			if doc, ok := emp.DocumentFor(def.ID, def.Name); ok {
				item.Document = doc
				claimed[doc.ID] = true
			}
			group.Items = append(group.Items, item)
		}
		groups = append(groups, group)
	}

	var orphans []DocumentFile
	for _, doc := range emp.Documents {
		if !claimed[doc.ID] {
			orphans = append(orphans, doc)
		}
	}
	return groups, orphans
}
