package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
)

type fakeStore struct {
	snapshot      Snapshot
	failSave      bool
	failSaveAfter int
	failDefs      bool
	failDelete    bool
	savedIDs      []string
	replacedSets  int
}

func (f *fakeStore) LoadAll(ctx context.Context) (Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeStore) SaveEmployee(ctx context.Context, emp personnel.Employee) error {
	if f.failSave || (f.failSaveAfter > 0 && len(f.savedIDs) >= f.failSaveAfter) {
		return errors.New("connection reset")
	}
	f.savedIDs = append(f.savedIDs, emp.ID)
	return nil
}

func (f *fakeStore) DeleteEmployee(ctx context.Context, id string) error {
	if f.failDelete {
		return errors.New("connection reset")
	}
	return nil
}

func (f *fakeStore) ReplaceDefinitions(ctx context.Context, defs []registry.DocumentDefinition) error {
	if f.failDefs {
		return errors.New("connection reset")
	}
	f.replacedSets++
	return nil
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	if store.snapshot.Employees == nil {
		store.snapshot = Snapshot{
			Employees: []personnel.Employee{
				{
					ID: "emp-1", FullName: "Budi Santoso", NIK: "1", BirthPlace: "Pacet",
					Phone: "0811", Email: "budi@x.id",
					Documents: []personnel.DocumentFile{
						{ID: "doc-1", DefinitionID: "d1", Type: "KTP", Status: personnel.DocStatusUploaded, Group: "Data Pribadi"},
					},
					VerificationStatus: personnel.VerificationPending,
				},
				{ID: "emp-2", FullName: "Siti Aminah", LastIncrementDate: "2023-01-01"},
			},
			Definitions: []registry.DocumentDefinition{
				{ID: "d1", Name: "KTP", Group: "Data Pribadi", IsRequired: true},
				{ID: "d2", Name: "Ijazah Terakhir", Group: "Pendidikan", IsRequired: true},
			},
			Users: []auth.UserAccount{
				{ID: "u-1", Username: "emp-1", Role: auth.RoleEmployee, Name: "Budi Santoso", EmployeeID: "emp-1"},
			},
		}
	}
	svc := New(store, "SMPN 3 PACET")
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return svc
}

func TestSaveEmployeeRecomputesCompletion(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	emp, _ := svc.EmployeeByID("emp-1")
	emp.CompletionPercentage = 5 // client-supplied value must be ignored

	saved, err := svc.SaveEmployee(context.Background(), emp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 5 fixed fields + 1 of 2 required docs over 7.
	if saved.CompletionPercentage != 86 {
		t.Fatalf("expected recomputed completion 86, got %d", saved.CompletionPercentage)
	}
	if saved.Unit != "SMPN 3 PACET" {
		t.Fatalf("expected unit defaulted, got %q", saved.Unit)
	}
}

func TestSaveFailureRevertsToSnapshot(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)
	before := svc.Employees()

	store.failSave = true
	emp, _ := svc.EmployeeByID("emp-1")
	emp.FullName = "Renamed"

	if _, err := svc.SaveEmployee(context.Background(), emp); err == nil {
		t.Fatal("expected save error")
	}

	after := svc.Employees()
	if len(after) != len(before) {
		t.Fatalf("roster size changed after failed save: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].FullName != before[i].FullName {
			t.Fatalf("record %s differs from pre-save snapshot", before[i].ID)
		}
	}
}

func TestDeleteFailureReverts(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	store.failDelete = true
	if err := svc.DeleteEmployee(context.Background(), "emp-1"); err == nil {
		t.Fatal("expected delete error")
	}
	if _, ok := svc.EmployeeByID("emp-1"); !ok {
		t.Fatal("employee missing after reverted delete")
	}
	if _, ok := svc.UserByEmployeeID("emp-1"); !ok {
		t.Fatal("linked account missing after reverted delete")
	}
}

func TestDeleteEmployeeRemovesLinkedAccount(t *testing.T) {
	svc := newTestService(t, &fakeStore{})

	if err := svc.DeleteEmployee(context.Background(), "emp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.UserByEmployeeID("emp-1"); ok {
		t.Fatal("expected linked account removed with the record")
	}
}

func TestDeleteUnknownEmployee(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	if err := svc.DeleteEmployee(context.Background(), "missing"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRenameDefinitionRewritesAffectedRecords(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	result, err := svc.RenameDefinition(context.Background(), "d1", "KTP Elektronik")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.AffectedEmployeeIDs) != 1 || result.AffectedEmployeeIDs[0] != "emp-1" {
		t.Fatalf("expected emp-1 affected, got %v", result.AffectedEmployeeIDs)
	}

	emp, _ := svc.EmployeeByID("emp-1")
	if emp.Documents[0].Type != "KTP Elektronik" {
		t.Fatalf("document display type not rewritten: %q", emp.Documents[0].Type)
	}
	if store.replacedSets != 1 || len(store.savedIDs) != 1 {
		t.Fatalf("expected one definition replace and one record save, got %d/%d", store.replacedSets, len(store.savedIDs))
	}
}

func TestRenameDefinitionFailureReverts(t *testing.T) {
	store := &fakeStore{failDefs: true}
	svc := newTestService(t, store)

	if _, err := svc.RenameDefinition(context.Background(), "d1", "KTP Elektronik"); err == nil {
		t.Fatal("expected error")
	}
	emp, _ := svc.EmployeeByID("emp-1")
	if emp.Documents[0].Type != "KTP" {
		t.Fatal("record rewrite survived failed persistence")
	}
	defs := svc.Definitions()
	if defs[0].Name != "KTP" {
		t.Fatal("definition rename survived failed persistence")
	}
}

func TestDeleteCategoryLeavesOrphans(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	result, err := svc.DeleteCategory(context.Background(), "Data Pribadi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.AffectedEmployeeIDs) != 1 {
		t.Fatalf("expected 1 affected record, got %v", result.AffectedEmployeeIDs)
	}
	for _, def := range result.Definitions {
		if def.Group == "Data Pribadi" {
			t.Fatal("deleted category still present")
		}
	}

	// The upload stays on the record and surfaces as a checklist orphan.
	emp, _ := svc.EmployeeByID("emp-1")
	if len(emp.Documents) != 1 {
		t.Fatal("orphaned document was removed from the record")
	}
	groups, orphans, err := svc.Checklist("emp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orphans) != 1 || orphans[0].ID != "doc-1" {
		t.Fatalf("expected doc-1 as orphan, got %v", orphans)
	}
	for _, g := range groups {
		if g.Category == "Data Pribadi" {
			t.Fatal("deleted category still listed in checklist")
		}
	}
}

func TestUpsertRosterRowMergesAndSaves(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := svc.RosterRows(today, "")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	row := rows[0]
	row.RankName = "Penata, III/c"
	saved, err := svc.UpsertRosterRow(context.Background(), row, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Pangkat != "Penata, III/c" {
		t.Fatalf("rank not merged, got %q", saved.Pangkat)
	}
	if len(saved.Documents) != 1 {
		t.Fatal("merge dropped existing documents")
	}
}

func TestRosterRowsFilter(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := svc.RosterRows(today, "siti")
	if len(rows) != 1 || rows[0].Name != "Siti Aminah" {
		t.Fatalf("expected Siti row only, got %v", rows)
	}
}

func TestDueIncrements(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	due := svc.DueIncrements(today)
	if len(due) != 1 || due[0].ID != "emp-2" {
		t.Fatalf("expected emp-2 due, got %v", due)
	}
}

func TestSetVerificationValidatesStatus(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	if _, err := svc.SetVerification(context.Background(), "emp-1", "Sudah OK", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	emp, err := svc.SetVerification(context.Background(), "emp-1", personnel.VerificationApproved, "lengkap")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.VerificationStatus != personnel.VerificationApproved || emp.AdminNotes != "lengkap" {
		t.Fatalf("verification not applied: %+v", emp)
	}
}

func TestAttachDocumentReplacesExisting(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	saved, doc, err := svc.AttachDocument(context.Background(), "emp-1", "d1", "ktp-baru.pdf", "/files/emp-1/x", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Status != personnel.DocStatusUploaded || doc.Type != "KTP" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	count := 0
	for _, d := range saved.Documents {
		if d.DefinitionID == "d1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one file per definition, got %d", count)
	}
}

func TestRefreshCompletion(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	changed, err := svc.RefreshCompletion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected both stale records refreshed, got %d", changed)
	}
}

func TestRefreshCompletionPartialFailure(t *testing.T) {
	store := &fakeStore{failSaveAfter: 1}
	svc := newTestService(t, store)

	changed, err := svc.RefreshCompletion(context.Background())
	if err == nil {
		t.Fatal("expected error from the second save")
	}
	if changed != 1 {
		t.Fatalf("expected one persisted update, got %d", changed)
	}

	// Memory must match what the store actually holds: the first record
	// carries its persisted score, the failed one is untouched.
	emp1, _ := svc.EmployeeByID("emp-1")
	if emp1.CompletionPercentage != 86 {
		t.Fatalf("expected persisted score applied, got %d", emp1.CompletionPercentage)
	}
	emp2, _ := svc.EmployeeByID("emp-2")
	if emp2.CompletionPercentage != 0 {
		t.Fatalf("expected unpersisted record unchanged, got %d", emp2.CompletionPercentage)
	}
}
