// Package roster owns the in-memory application state: the employee
// collection, the document-definition registry and the login accounts,
// loaded once at startup and kept authoritative for the process. All
// mutations go through the Service, which serializes them and follows an
// optimistic save discipline: apply in memory, persist, and revert to
// the pre-edit snapshot if persistence fails.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidStatus    = errors.New("invalid verification status")
)

// Store is the persistence collaborator. It is a record store, not a
// query engine: whole records go in and out, and the definition set is
// replaced as a unit.
type Store interface {
	LoadAll(ctx context.Context) (Snapshot, error)
	SaveEmployee(ctx context.Context, emp personnel.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	ReplaceDefinitions(ctx context.Context, defs []registry.DocumentDefinition) error
}

type Snapshot struct {
	Employees   []personnel.Employee
	Definitions []registry.DocumentDefinition
	Users       []auth.UserAccount
}

// CascadeResult reports the outcome of a registry mutation: the new
// definition set and the ids of every employee record the cascade
// touched or orphaned.
type CascadeResult struct {
	Definitions         []registry.DocumentDefinition `json:"definitions"`
	AffectedEmployeeIDs []string                      `json:"affectedEmployeeIds"`
}

type Service struct {
	store      Store
	schoolName string

	mu          sync.Mutex
	employees   []personnel.Employee
	definitions []registry.DocumentDefinition
	users       []auth.UserAccount
}

func New(store Store, schoolName string) *Service {
	return &Service{store: store, schoolName: schoolName}
}

// Load replaces the in-memory state with the persisted snapshot.
func (s *Service) Load(ctx context.Context) error {
	snap, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load roster state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = snap.Employees
	s.definitions = snap.Definitions
	s.users = snap.Users
	return nil
}

func (s *Service) Employees() []personnel.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]personnel.Employee, len(s.employees))
	for i := range s.employees {
		out[i] = s.employees[i].Clone()
	}
	return out
}

func (s *Service) EmployeeByID(id string) (personnel.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, emp := range s.employees {
		if emp.ID == id {
			return emp.Clone(), true
		}
	}
	return personnel.Employee{}, false
}

func (s *Service) Definitions() []registry.DocumentDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]registry.DocumentDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

func (s *Service) Categories() []string {
	return registry.Categories(s.Definitions())
}

func (s *Service) UserByUsername(username string) (auth.UserAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return auth.UserAccount{}, false
}

func (s *Service) UserByEmployeeID(employeeID string) (auth.UserAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.EmployeeID != "" && u.EmployeeID == employeeID {
			return u, true
		}
	}
	return auth.UserAccount{}, false
}

// SaveEmployee upserts a record by id. The completion percentage is
// recomputed against the current registry before the record is applied;
// client-supplied scores are ignored.
func (s *Service) SaveEmployee(ctx context.Context, emp personnel.Employee) (personnel.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	if emp.Unit == "" {
		emp.Unit = s.schoolName
	}
	emp.LastUpdated = time.Now().Format(personnel.DateLayout)
	emp.CompletionPercentage = personnel.Completeness(&emp, s.definitions)

	prev := s.snapshotEmployeesLocked()
	s.upsertLocked(emp)

	if err := s.store.SaveEmployee(ctx, emp); err != nil {
		s.employees = prev
		return personnel.Employee{}, fmt.Errorf("persist employee %s: %w", emp.ID, err)
	}
	return emp, nil
}

// DeleteEmployee removes a record together with its linked login
// account, reverting both on persistence failure.
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevEmployees := s.snapshotEmployeesLocked()
	prevUsers := s.users
	found := false
	next := s.employees[:0:0]
	for _, emp := range s.employees {
		if emp.ID == id {
			found = true
			continue
		}
		next = append(next, emp)
	}
	if !found {
		return ErrEmployeeNotFound
	}
	s.employees = next

	users := s.users[:0:0]
	for _, u := range s.users {
		if u.EmployeeID == id {
			continue
		}
		users = append(users, u)
	}
	s.users = users

	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		s.employees = prevEmployees
		s.users = prevUsers
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	return nil
}

// UpsertRosterRow merges an edited DUK row into the canonical record and
// saves it.
func (s *Service) UpsertRosterRow(ctx context.Context, row personnel.RosterRow, today time.Time) (personnel.Employee, error) {
	var existing *personnel.Employee
	if row.ID != "" {
		if emp, ok := s.EmployeeByID(row.ID); ok {
			existing = &emp
		}
	}
	merged := personnel.MergeRosterRow(existing, row, today, s.schoolName)
	return s.SaveEmployee(ctx, merged)
}

// RosterRows projects every employee to a DUK row, optionally filtered
// by a name / NIP / position search term.
func (s *Service) RosterRows(today time.Time, query string) []personnel.RosterRow {
	employees := s.Employees()
	query = strings.ToLower(strings.TrimSpace(query))

	rows := make([]personnel.RosterRow, 0, len(employees))
	for i := range employees {
		row := personnel.ProjectRosterRow(&employees[i], today)
		if query != "" &&
			!strings.Contains(strings.ToLower(row.Name), query) &&
			!strings.Contains(row.NIP, query) &&
			!strings.Contains(strings.ToLower(row.PositionName), query) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// DueIncrements returns the rows currently inside the periodic-increment
// alert window.
func (s *Service) DueIncrements(today time.Time) []personnel.RosterRow {
	var due []personnel.RosterRow
	for _, row := range s.RosterRows(today, "") {
		if row.Alert {
			due = append(due, row)
		}
	}
	return due
}

func (s *Service) Stats() personnel.DashboardStats {
	return personnel.ComputeStats(s.Employees())
}

func (s *Service) Checklist(employeeID string) ([]personnel.ChecklistGroup, []personnel.DocumentFile, error) {
	emp, ok := s.EmployeeByID(employeeID)
	if !ok {
		return nil, nil, ErrEmployeeNotFound
	}
	groups, orphans := personnel.Checklist(&emp, s.Definitions())
	return groups, orphans, nil
}

// SetVerification is the admin-only verification state change.
func (s *Service) SetVerification(ctx context.Context, employeeID, status, notes string) (personnel.Employee, error) {
	switch status {
	case personnel.VerificationPending, personnel.VerificationApproved, personnel.VerificationRevision:
	default:
		return personnel.Employee{}, ErrInvalidStatus
	}

	emp, ok := s.EmployeeByID(employeeID)
	if !ok {
		return personnel.Employee{}, ErrEmployeeNotFound
	}
	emp.VerificationStatus = status
	emp.AdminNotes = notes
	return s.SaveEmployee(ctx, emp)
}

// AttachDocument replaces the record's document for the definition with
// a fresh upload. A record holds at most one file per definition.
func (s *Service) AttachDocument(ctx context.Context, employeeID, definitionID, fileName, url string, today time.Time) (personnel.Employee, personnel.DocumentFile, error) {
	def, ok := registry.ByID(s.Definitions(), definitionID)
	if !ok {
		return personnel.Employee{}, personnel.DocumentFile{}, registry.ErrNotFound
	}
	emp, found := s.EmployeeByID(employeeID)
	if !found {
		return personnel.Employee{}, personnel.DocumentFile{}, ErrEmployeeNotFound
	}

	doc := personnel.DocumentFile{
		ID:           uuid.NewString(),
		DefinitionID: def.ID,
		Type:         def.Name,
		FileName:     fileName,
		UploadDate:   today.Format(personnel.DateLayout),
		URL:          url,
		Status:       personnel.DocStatusUploaded,
		Group:        def.Group,
	}

	docs := emp.Documents[:0:0]
	for _, existing := range emp.Documents {
		if existing.DefinitionID == def.ID || (existing.DefinitionID == "" && existing.Type == def.Name) {
			continue
		}
		docs = append(docs, existing)
	}
	emp.Documents = append(docs, doc)

	saved, err := s.SaveEmployee(ctx, emp)
	if err != nil {
		return personnel.Employee{}, personnel.DocumentFile{}, err
	}
	return saved, doc, nil
}

// RemoveDocument detaches a document by id or display type.
func (s *Service) RemoveDocument(ctx context.Context, employeeID, documentKey string) (personnel.Employee, error) {
	emp, ok := s.EmployeeByID(employeeID)
	if !ok {
		return personnel.Employee{}, ErrEmployeeNotFound
	}

	found := false
	docs := emp.Documents[:0:0]
	for _, doc := range emp.Documents {
		if doc.ID == documentKey || doc.Type == documentKey {
			found = true
			continue
		}
		docs = append(docs, doc)
	}
	if !found {
		return personnel.Employee{}, ErrDocumentNotFound
	}
	emp.Documents = docs
	return s.SaveEmployee(ctx, emp)
}

// RefreshCompletion recomputes every record's completion percentage
// against the current registry. Each changed record is persisted first
// and applied to memory only on success, so a mid-pass failure leaves
// memory matching exactly what the store holds. Returns the number of
// updated records, which on error counts the records persisted before
// the failure.
func (s *Service) RefreshCompletion(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.employees {
		score := personnel.Completeness(&s.employees[i], s.definitions)
		if score == s.employees[i].CompletionPercentage {
			continue
		}
		updated := s.employees[i].Clone()
		updated.CompletionPercentage = score
		if err := s.store.SaveEmployee(ctx, updated); err != nil {
			return changed, fmt.Errorf("refresh completion for %s: %w", updated.ID, err)
		}
		s.employees[i] = updated
		changed++
	}
	return changed, nil
}

// snapshotEmployeesLocked deep-copies the roster so cascade rewrites,
// which edit documents in place, cannot leak into the revert snapshot.
func (s *Service) snapshotEmployeesLocked() []personnel.Employee {
	prev := make([]personnel.Employee, len(s.employees))
	for i := range s.employees {
		prev[i] = s.employees[i].Clone()
	}
	return prev
}

func (s *Service) upsertLocked(emp personnel.Employee) {
	stored := emp.Clone()
	for i := range s.employees {
		if s.employees[i].ID == emp.ID {
			s.employees[i] = stored
			return
		}
	}
	s.employees = append(s.employees, stored)
}
