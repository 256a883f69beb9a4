package personnel

import (
	"testing"

	"simpeg/internal/domain/registry"
)

func requiredDefs() []registry.DocumentDefinition {
	return []registry.DocumentDefinition{
		{ID: "d1", Name: "KTP", Group: "Data Pribadi", IsRequired: true},
		{ID: "d2", Name: "NPWP", Group: "Data Pribadi", IsRequired: true},
		{ID: "d3", Name: "Ijazah Terakhir", Group: "Pendidikan", IsRequired: true},
	}
}

func filledEmployee() *Employee {
	return &Employee{
		ID:         "emp-1",
		FullName:   "Budi Santoso",
		NIK:        "3507010101800001",
		BirthPlace: "Mojokerto",
		Phone:      "081234567890",
		Email:      "budi@example.sch.id",
	}
}

func TestCompletenessPartialDocuments(t *testing.T) {
	emp := filledEmployee()
	emp.Documents = []DocumentFile{
		{ID: "f1", DefinitionID: "d1", Type: "KTP", Status: DocStatusUploaded},
		{ID: "f2", DefinitionID: "d2", Type: "NPWP", Status: DocStatusVerified},
	}

	// 5 fixed fields + 2 of 3 required docs over a denominator of 8.
	got := Completeness(emp, requiredDefs())
	if got != 88 {
		t.Fatalf("expected 88, got %d", got)
	}
}

func TestCompletenessBounds(t *testing.T) {
	empty := &Employee{}
	if got := Completeness(empty, requiredDefs()); got != 0 {
		t.Fatalf("expected 0 for empty record, got %d", got)
	}

	emp := filledEmployee()
	emp.Documents = []DocumentFile{
		{ID: "f1", DefinitionID: "d1", Status: DocStatusUploaded},
		{ID: "f2", DefinitionID: "d2", Status: DocStatusUploaded},
		{ID: "f3", DefinitionID: "d3", Status: DocStatusVerified},
	}
	if got := Completeness(emp, requiredDefs()); got != 100 {
		t.Fatalf("expected 100 for complete record, got %d", got)
	}
}

func TestCompletenessEmptyRegistry(t *testing.T) {
	// Without definitions only the 5 fixed fields count.
	if got := Completeness(filledEmployee(), nil); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := Completeness(&Employee{}, nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCompletenessMissingStatusDoesNotCount(t *testing.T) {
	emp := filledEmployee()
	emp.Documents = []DocumentFile{
		{ID: "f1", DefinitionID: "d1", Status: DocStatusMissing},
	}
	if got := Completeness(emp, requiredDefs()); got != 63 {
		// 5 of 8.
		t.Fatalf("expected 63, got %d", got)
	}
}

func TestCompletenessMonotoneInUploads(t *testing.T) {
	emp := filledEmployee()
	prev := Completeness(emp, requiredDefs())
	for _, id := range []string{"d1", "d2", "d3"} {
		emp.Documents = append(emp.Documents, DocumentFile{ID: "f-" + id, DefinitionID: id, Status: DocStatusUploaded})
		got := Completeness(emp, requiredDefs())
		if got < prev {
			t.Fatalf("completeness decreased after upload: %d -> %d", prev, got)
		}
		prev = got
	}
}

func TestCompletenessOptionalDocsIgnored(t *testing.T) {
	defs := append(requiredDefs(), registry.DocumentDefinition{ID: "d4", Name: "Sertifikat Pendidik", IsRequired: false})
	emp := filledEmployee()

	withOptional := Completeness(emp, defs)
	withoutOptional := Completeness(emp, requiredDefs())
	if withOptional != withoutOptional {
		t.Fatalf("optional definitions must not change the score: %d vs %d", withOptional, withoutOptional)
	}
}

func TestCompletenessLegacyNameMatch(t *testing.T) {
	emp := filledEmployee()
	emp.Documents = []DocumentFile{
		{ID: "f1", Type: "KTP", Status: DocStatusUploaded}, // imported row, no definition id
	}
	if got := Completeness(emp, requiredDefs()); got != 75 {
		// 6 of 8.
		t.Fatalf("expected 75, got %d", got)
	}
}
