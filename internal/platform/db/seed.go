package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/auth"
	"simpeg/internal/domain/personnel"
	"simpeg/internal/domain/registry"
	"simpeg/internal/platform/config"
)

// Seed is idempotent: each step checks for existing rows before writing.
// It creates the admin account, the default document-definition set, the
// school's initial DUK roster and one login account per seeded employee.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg); err != nil {
		return err
	}
	if err := ensureDefinitions(ctx, pool); err != nil {
		return err
	}
	if err := ensureRoster(ctx, pool, cfg); err != nil {
		return err
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE role = $1", auth.RoleAdmin).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, password_hash, role, display_name)
    VALUES ($1, $2, $3, $4)
  `, cfg.SeedAdminUsername, hash, auth.RoleAdmin, "Administrator")
	return err
}

// defaultDefinitions is the school's standard document checklist. Every
// entry starts required; admins trim it from settings.
func defaultDefinitions() []registry.DocumentDefinition {
	groups := []struct {
		name  string
		items []string
	}{
		{"Data Pribadi", []string{"KTP", "Kartu Keluarga", "NPWP", "Buku Nikah"}},
		{"Kepegawaian", []string{"SK Pengangkatan", "SK Penugasan", "SK Pangkat Terakhir", "Karpeg"}},
		{"Pendidikan", []string{"Ijazah Terakhir", "Transkrip Nilai"}},
		{"Sertifikasi", []string{"Sertifikat Pendidik", "NRG"}},
	}

	var defs []registry.DocumentDefinition
	for _, g := range groups {
		for _, name := range g.items {
			defs = append(defs, registry.DocumentDefinition{
				ID:         uuid.NewString(),
				Name:       name,
				Group:      g.name,
				IsRequired: true,
			})
		}
	}
	return defs
}

func ensureDefinitions(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM document_definitions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, def := range defaultDefinitions() {
		if _, err := pool.Exec(ctx, `
      INSERT INTO document_definitions (id, name, doc_group, is_required, position)
      VALUES ($1, $2, $3, $4, $5)
    `, def.ID, def.Name, def.Group, def.IsRequired, i); err != nil {
			return err
		}
	}
	return nil
}

type seedEmployee struct {
	row        personnel.RosterRow
	birthPlace string
}

func ensureRoster(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	employeePassword := cfg.SeedEmployeePassword
	if employeePassword == "" {
		employeePassword = "pegawai123"
	}
	hash, err := auth.HashPassword(employeePassword)
	if err != nil {
		return err
	}

	today := time.Now()
	for i, seed := range initialRoster() {
		emp := personnel.MergeRosterRow(nil, seed.row, today, cfg.SchoolName)
		emp.BirthPlace = seed.birthPlace

		data, err := json.Marshal(emp)
		if err != nil {
			return fmt.Errorf("encode seed employee %s: %w", emp.ID, err)
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (id, position, data) VALUES ($1, $2, $3::jsonb)
      ON CONFLICT (id) DO NOTHING
    `, emp.ID, i+1, data); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO users (username, password_hash, role, display_name, employee_id)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (username) DO NOTHING
    `, emp.ID, hash, auth.RoleEmployee, emp.FullName, emp.ID); err != nil {
			return err
		}
	}
	return nil
}

// initialRoster is the school's published DUK listing, entered as roster
// rows so the seed goes through the same merge path as a live edit.
func initialRoster() []seedEmployee {
	return []seedEmployee{
		{row: personnel.RosterRow{ID: "emp-1", Name: "Didik Sulistyo, M.M.Pd", NIP: "19660518 198901 1 002", Karpeg: "-", Sex: "L", RankName: "Pembina Utama Muda/IVc", RankTMT: "-", PositionName: "Pembina Utama Muda", PositionTMT: "1989-01-01", GradeYears: "10", GradeMonths: "6", TotalYears: "34", TotalMonths: "3", EduInstitution: "STMI", EduYear: "2009", EduLevel: "Pasca sarjana", EduMajor: "Magister Manajemen", BirthDate: "1966-05-18", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Nganjuk"},
		{row: personnel.RosterRow{ID: "emp-2", Name: "Dra. Sri Hayati", NIP: "19670628 200801 2 006", Karpeg: "-", Sex: "P", RankName: "Penata Tingkat I/IIId", RankTMT: "-", PositionName: "Guru Muda", PositionTMT: "2020-09-30", GradeYears: "5", GradeMonths: "3", TotalYears: "22", TotalMonths: "7", EduInstitution: "Un. Jenggala Sidoarjo", EduYear: "1992", EduLevel: "Sarjana", EduMajor: "Pend. Bhs & Seni", BirthDate: "1967-06-28", MasaKpyad: "-", LastIncrementDate: "2023-01-01", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-3", Name: "Bakhtiar Rifai, SE", NIP: "19800304 200801 1 009", Karpeg: "-", Sex: "L", RankName: "Penata Tingkat I/IIId", RankTMT: "2020-10-01", PositionName: "Guru Muda", PositionTMT: "2020-09-30", GradeYears: "5", GradeMonths: "3", TotalYears: "20", TotalMonths: "0", EduInstitution: "STIESIA Surabaya", EduYear: "2004", EduLevel: "Sarjana", EduMajor: "Managemen Ekonomi", BirthDate: "1980-03-04", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-4", Name: "Akhmad Hariadi, S.Pd", NIP: "19751108 200901 1 001", Karpeg: "-", Sex: "L", RankName: "Penata Muda Tk I, IIIb", RankTMT: "-", PositionName: "Guru Madya", PositionTMT: "2014-04-01", GradeYears: "5", GradeMonths: "3", TotalYears: "14", TotalMonths: "0", EduInstitution: "Univ.Barawijaya TBN", EduYear: "2007", EduLevel: "Sarjana", EduMajor: "Pend.Bahasa Inggris", BirthDate: "1975-11-08", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-5", Name: "Moch. Husain Rifai Hamzah, S.Pd", NIP: "19920316 202012 1 011", Karpeg: "-", Sex: "L", RankName: "Penata Muda Tk I/IIIb", RankTMT: "-", PositionName: "Guru Madya", PositionTMT: "2025-04-01", GradeYears: "5", GradeMonths: "0", TotalYears: "0", TotalMonths: "0", EduInstitution: "UNESA", EduYear: "2016", EduLevel: "Sarjana", EduMajor: "Penjaskes", BirthDate: "1992-03-16", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-6", Name: "Rudi Hermawan, S.Pd.", NIP: "19891029 202012 1 003", Karpeg: "-", Sex: "L", RankName: "Penata Muda Tk I/IIIb", RankTMT: "-", PositionName: "Guru Madya", PositionTMT: "2025-12-01", GradeYears: "5", GradeMonths: "0", TotalYears: "0", TotalMonths: "0", EduInstitution: "UPTDU Jombang", EduYear: "2013", EduLevel: "Sarjana", EduMajor: "Pend. Agama Islam", BirthDate: "1989-10-29", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-7", Name: "Okha Devi Anggraini, S.Pd", NIP: "19941002 202012 2 008", Karpeg: "-", Sex: "P", RankName: "Penata Muda Tk I/IIIb", RankTMT: "-", PositionName: "Guru Madya", PositionTMT: "2025-12-01", GradeYears: "5", GradeMonths: "0", TotalYears: "0", TotalMonths: "0", EduInstitution: "U. Kanjuruan Malang", EduYear: "2017", EduLevel: "Sarjana", EduMajor: "Bimbingan Dan Konseling", BirthDate: "1994-10-02", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-8", Name: "Eka Hariyati, S.Pd", NIP: "19731129 202421 2 003", Karpeg: "-", Sex: "P", RankName: "IX", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2024-03-07", GradeYears: "1", GradeMonths: "9", TotalYears: "19", TotalMonths: "5", EduInstitution: "IKIP PGRI Mojokerto", EduYear: "1997", EduLevel: "Sarjana", EduMajor: "PMP dan KN", BirthDate: "1973-11-29", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-9", Name: "Mikoe Wahyudi Putra, S.Pd", NIP: "19820222 202421 1 004", Karpeg: "-", Sex: "L", RankName: "IX", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2024-03-07", GradeYears: "1", GradeMonths: "9", TotalYears: "19", TotalMonths: "5", EduInstitution: "Univ. Darul 'Ulum Jombang", EduYear: "2008", EduLevel: "Sarjana", EduMajor: "Ilmu Pendidikan", BirthDate: "1982-02-22", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-10", Name: "Purnadi, S.Pd", NIP: "19680705 202421 1 001", Karpeg: "-", Sex: "L", RankName: "IX", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2024-03-01", GradeYears: "1", GradeMonths: "8", TotalYears: "17", TotalMonths: "2", EduInstitution: "STKIP PGRI Mojokerto", EduYear: "1998", EduLevel: "Sarjana", EduMajor: "Pend. Matematika", BirthDate: "1968-07-05", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-11", Name: "Retno Nawangwulan, S.Pd", NIP: "19850703 202521 2 006", Karpeg: "-", Sex: "P", RankName: "IX", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2025-03-01", GradeYears: "0", GradeMonths: "10", TotalYears: "19", TotalMonths: "5", EduInstitution: "STIKIP PGRI Jombang", EduYear: "2010", EduLevel: "Sarjana", EduMajor: "Pend. Bahasa dan Seni", BirthDate: "1985-07-03", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-12", Name: "Israfin Maria Ulfa, S.Pd", NIP: "19850131 202521 2 004", Karpeg: "-", Sex: "P", RankName: "IX", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2025-03-01", GradeYears: "0", GradeMonths: "10", TotalYears: "-", TotalMonths: "-", EduInstitution: "Univ. Negeri Malang", EduYear: "2007", EduLevel: "Sarjana", EduMajor: "Pendidikan Ekonomi", BirthDate: "1985-01-31", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-13", Name: "Emilia Kartika Sari, S.Pd", NIP: "20010507 202521 2 026", Karpeg: "-", Sex: "P", RankName: "PPPK PW", RankTMT: "-", PositionName: "Guru Ahli Pertama", PositionTMT: "2025-10-01", GradeYears: "0", GradeMonths: "0", TotalYears: "-", TotalMonths: "-", EduInstitution: "UNMU Malang", EduYear: "2023", EduLevel: "Sarjana", EduMajor: "Pendidikan Matematika FKIP", BirthDate: "2001-05-07", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-14", Name: "Syadam Budi satrianto, S.Pd.", NIP: "-", Karpeg: "-", Sex: "L", RankName: "-", RankTMT: "-", PositionName: "GTT", PositionTMT: "2020-07-08", GradeYears: "-", GradeMonths: "-", TotalYears: "4", TotalMonths: "5", EduInstitution: "UNESA", EduYear: "2014", EduLevel: "Sarjana", EduMajor: "Pend. Olah Raga", BirthDate: "1991-01-25", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-15", Name: "Rebby Dwi Prataopu, S.Si", NIP: "-", Karpeg: "-", Sex: "P", RankName: "-", RankTMT: "-", PositionName: "GTT", PositionTMT: "2023-07-17", GradeYears: "-", GradeMonths: "-", TotalYears: "2", TotalMonths: "5", EduInstitution: "UNESA", EduYear: "2013", EduLevel: "Sarjana", EduMajor: "Fisika", BirthDate: "1987-10-28", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Subang"},
		{row: personnel.RosterRow{ID: "emp-16", Name: "Mukhamad Yunus, S.Pd", NIP: "-", Karpeg: "-", Sex: "L", RankName: "-", RankTMT: "-", PositionName: "GTT", PositionTMT: "2025-08-07", GradeYears: "-", GradeMonths: "-", TotalYears: "0", TotalMonths: "4", EduInstitution: "UNESA", EduYear: "2011", EduLevel: "Sarjana", EduMajor: "Pend. IPA", BirthDate: "1989-01-31", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Bojonegoro"},
		{row: personnel.RosterRow{ID: "emp-17", Name: "Fahmi Wahyuni, S.Pd", NIP: "-", Karpeg: "-", Sex: "P", RankName: "-", RankTMT: "-", PositionName: "GTT", PositionTMT: "2025-08-07", GradeYears: "-", GradeMonths: "-", TotalYears: "0", TotalMonths: "4", EduInstitution: "UNIDHA Malang", EduYear: "2013", EduLevel: "Sarjana", EduMajor: "Pend. Bahasa dan Sastra Indonesia", BirthDate: "1991-01-22", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-18", Name: "Fakhita Madury, S.Sn.", NIP: "-", Karpeg: "-", Sex: "P", RankName: "-", RankTMT: "-", PositionName: "GTT", PositionTMT: "2025-08-07", GradeYears: "-", GradeMonths: "-", TotalYears: "0", TotalMonths: "4", EduInstitution: "STKW Surabaya", EduYear: "2020", EduLevel: "Sarjana", EduMajor: "Seni Rupa Murni", BirthDate: "1998-06-14", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Sumenep"},
		{row: personnel.RosterRow{ID: "emp-19", Name: "Imam Safi'i", NIP: "19790421 202521 1 055", Karpeg: "-", Sex: "L", RankName: "PPPK PW", RankTMT: "-", PositionName: "Operator Layanan Operasional", PositionTMT: "2025-10-01", GradeYears: "0", GradeMonths: "0", TotalYears: "19", TotalMonths: "5", EduInstitution: "MAN Mojosari", EduYear: "1998", EduLevel: "SMA", EduMajor: "IPS", BirthDate: "1979-04-21", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-20", Name: "Mansyur Rokhmad", NIP: "19811101 202521 1 057", Karpeg: "-", Sex: "L", RankName: "PPPK PW", RankTMT: "-", PositionName: "Operator Layanan Operasional", PositionTMT: "2025-10-01", GradeYears: "0", GradeMonths: "0", TotalYears: "19", TotalMonths: "5", EduInstitution: "STM KITA BHAKTI", EduYear: "2000", EduLevel: "STM", EduMajor: "Mekanik Umum", BirthDate: "1981-11-01", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Mojokerto"},
		{row: personnel.RosterRow{ID: "emp-21", Name: "Rayi Putri Lestari, S.Pd.", NIP: "19900209 202521 2 112", Karpeg: "-", Sex: "P", RankName: "PPPK PW", RankTMT: "-", PositionName: "Operator Layanan Operasional", PositionTMT: "2025-10-01", GradeYears: "0", GradeMonths: "0", TotalYears: "2", TotalMonths: "5", EduInstitution: "Universitas Terbuka", EduYear: "2014", EduLevel: "Sarjana", EduMajor: "PGSD", BirthDate: "1990-02-09", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Sidoarjo"},
		{row: personnel.RosterRow{ID: "emp-22", Name: "Mochamad Ansori", NIP: "19840516 202521 1 005", Karpeg: "-", Sex: "L", RankName: "PPPK PW", RankTMT: "-", PositionName: "Operator Layanan Operasional", PositionTMT: "2025-10-01", GradeYears: "0", GradeMonths: "0", TotalYears: "8", TotalMonths: "0", EduInstitution: "SMK Dharma Bhakti", EduYear: "2004", EduLevel: "SMK", EduMajor: "Teknik Mesin", BirthDate: "1984-05-16", MasaKpyad: "-", TransferNotes: "-"}, birthPlace: "Surabaya"},
	}
}
