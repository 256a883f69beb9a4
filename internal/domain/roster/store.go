package roster

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
)

// DBStore is the Postgres-backed Store. Employee records are stored
// whole as JSONB keyed by id; the position column keeps the roster's
// insertion order stable across loads.
type DBStore struct {
	db *pgxpool.Pool
}

func NewDBStore(db *pgxpool.Pool) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) LoadAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.Query(ctx, "SELECT data FROM employees ORDER BY position, id")
	if err != nil {
		return Snapshot{}, fmt.Errorf("load employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return Snapshot{}, err
		}
		var emp personnel.Employee
		if err := json.Unmarshal(raw, &emp); err != nil {
			return Snapshot{}, fmt.Errorf("decode employee record: %w", err)
		}
		snap.Employees = append(snap.Employees, emp)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	defRows, err := s.db.Query(ctx, "SELECT id, name, doc_group, is_required FROM document_definitions ORDER BY position, id")
	if err != nil {
		return Snapshot{}, fmt.Errorf("load definitions: %w", err)
	}
	defer defRows.Close()
	for defRows.Next() {
		var def registry.DocumentDefinition
		if err := defRows.Scan(&def.ID, &def.Name, &def.Group, &def.IsRequired); err != nil {
			return Snapshot{}, err
		}
		snap.Definitions = append(snap.Definitions, def)
	}
	if err := defRows.Err(); err != nil {
		return Snapshot{}, err
	}

	userRows, err := s.db.Query(ctx, "SELECT id, username, password_hash, role, display_name, COALESCE(employee_id, '') FROM users ORDER BY username")
	if err != nil {
		return Snapshot{}, fmt.Errorf("load users: %w", err)
	}
	defer userRows.Close()
	for userRows.Next() {
		var u auth.UserAccount
		if err := userRows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Name, &u.EmployeeID); err != nil {
			return Snapshot{}, err
		}
		snap.Users = append(snap.Users, u)
	}
	if err := userRows.Err(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (s *DBStore) SaveEmployee(ctx context.Context, emp personnel.Employee) error {
	data, err := json.Marshal(emp)
	if err != nil {
		return fmt.Errorf("encode employee record: %w", err)
	}
	_, err = s.db.Exec(ctx, `
    INSERT INTO employees (id, position, data, updated_at)
    SELECT $1, COALESCE(MAX(position), 0) + 1, $2::jsonb, now() FROM employees
    ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
  `, emp.ID, data)
	return err
}

// DeleteEmployee removes the record and any login account bound to it
// in one transaction, so an orphaned account can never outlive its
// record.
func (s *DBStore) DeleteEmployee(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM users WHERE employee_id = $1", id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return tx.Commit(ctx)
}

// ReplaceDefinitions swaps the whole definition set in one transaction,
// preserving slice order in the position column.
func (s *DBStore) ReplaceDefinitions(ctx context.Context, defs []registry.DocumentDefinition) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM document_definitions"); err != nil {
		return err
	}
	for i, def := range defs {
		if _, err := tx.Exec(ctx, `
      INSERT INTO document_definitions (id, name, doc_group, is_required, position)
      VALUES ($1, $2, $3, $4, $5)
    `, def.ID, def.Name, def.Group, def.IsRequired, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
