package registry

import (
	"errors"
	"testing"
)

func sampleDefs() []DocumentDefinition {
	return []DocumentDefinition{
		{ID: "d1", Name: "KTP", Group: "Data Pribadi", IsRequired: true},
		{ID: "d2", Name: "NPWP", Group: "Data Pribadi", IsRequired: true},
		{ID: "d3", Name: "SK Pengangkatan", Group: "Kepegawaian", IsRequired: true},
		{ID: "d4", Name: "Sertifikat Pendidik", Group: "Sertifikasi", IsRequired: false},
	}
}

func TestAddDefaultsToOptional(t *testing.T) {
	defs, added, err := Add(sampleDefs(), "Karpeg", "Kepegawaian")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added.IsRequired {
		t.Fatal("new definitions must start optional")
	}
	if added.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(defs) != 5 {
		t.Fatalf("expected 5 definitions, got %d", len(defs))
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	if _, _, err := Add(sampleDefs(), "ktp", "Lainnya"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestRenameKeepsIDAndFlag(t *testing.T) {
	defs, renamed, err := Rename(sampleDefs(), "d2", "NPWP Pribadi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.ID != "d2" || renamed.Name != "NPWP Pribadi" || !renamed.IsRequired {
		t.Fatalf("rename changed more than the name: %+v", renamed)
	}
	if defs[1].Name != "NPWP Pribadi" {
		t.Fatal("returned slice not updated")
	}
}

func TestRenameUnknownID(t *testing.T) {
	if _, _, err := Rename(sampleDefs(), "missing", "X"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleRequired(t *testing.T) {
	defs, toggled, err := ToggleRequired(sampleDefs(), "d4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toggled.IsRequired {
		t.Fatal("expected d4 to become required")
	}
	defs, toggled, err = ToggleRequired(defs, "d4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled.IsRequired {
		t.Fatal("expected d4 to become optional again")
	}
	_ = defs
}

func TestDeleteCategoryRemovesAllMembers(t *testing.T) {
	defs, removed, err := DeleteCategory(sampleDefs(), "Data Pribadi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed definitions, got %d", len(removed))
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 remaining definitions, got %d", len(defs))
	}
	for _, d := range defs {
		if d.Group == "Data Pribadi" {
			t.Fatal("category member survived delete")
		}
	}
}

func TestRenameCategoryRetargetsAllMembers(t *testing.T) {
	defs, moved, err := RenameCategory(sampleDefs(), "Data Pribadi", "Identitas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 moved definitions, got %d", moved)
	}
	cats := Categories(defs)
	if cats[0] != "Identitas" {
		t.Fatalf("expected renamed category first, got %v", cats)
	}
}

func TestGroupByCategoryPreservesOrder(t *testing.T) {
	order, grouped := GroupByCategory(sampleDefs())
	want := []string{"Data Pribadi", "Kepegawaian", "Sertifikasi"}
	if len(order) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(order))
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("category order mismatch at %d: got %s want %s", i, order[i], name)
		}
	}
	if len(grouped["Data Pribadi"]) != 2 {
		t.Fatalf("expected 2 definitions in Data Pribadi, got %d", len(grouped["Data Pribadi"]))
	}
}
