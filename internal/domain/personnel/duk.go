package personnel

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dash is the display sentinel for an empty optional field in roster
// views, matching the school's printed DUK sheet.
const Dash = "-"

// IncrementRemark is the user-facing note rendered when an employee's
// periodic salary increment is due.
const IncrementRemark = "Waktunya Kenaikan Berkala"

// Increments are due every two calendar years; rows enter the alert
// window this many days before the due date.
const incrementAlertWindowDays = 90

// RosterRow is the flattened seniority-roster (DUK) view of an employee:
// the columns of the printed sheet, all strings, with Dash standing in
// for missing optionals.
type RosterRow struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	NIP               string `json:"nip"`
	Karpeg            string `json:"karpeg"`
	Sex               string `json:"sex"`
	RankName          string `json:"rankName"`
	RankTMT           string `json:"rankTmt"`
	PositionName      string `json:"positionName"`
	PositionTMT       string `json:"positionTmt"`
	GradeYears        string `json:"gradeYears"`
	GradeMonths       string `json:"gradeMonths"`
	TotalYears        string `json:"totalYears"`
	TotalMonths       string `json:"totalMonths"`
	EduInstitution    string `json:"eduInstitution"`
	EduYear           string `json:"eduYear"`
	EduLevel          string `json:"eduLevel"`
	EduMajor          string `json:"eduMajor"`
	BirthDate         string `json:"birthDate"`
	MasaKpyad         string `json:"masaKpyad"`
	LastIncrementDate string `json:"lastIncrementDate"`
	NextIncrementDate string `json:"nextIncrementDate"`
	TransferNotes     string `json:"transferNotes"`
	Remark            string `json:"remark"`
	Alert             bool   `json:"alert"`
}

// ProjectRosterRow derives the DUK row for a record as of the given day.
// It is pure: the record is not modified and the same inputs always give
// the same row.
func ProjectRosterRow(emp *Employee, today time.Time) RosterRow {
	next := addYears(emp.LastIncrementDate, 2)
	alert := withinIncrementWindow(next, today)

	row := RosterRow{
		ID:                emp.ID,
		Name:              emp.FullName,
		NIP:               dashIfEmpty(emp.NIP),
		Karpeg:            dashIfEmpty(emp.Karpeg),
		Sex:               "P",
		RankName:          dashIfEmpty(emp.Pangkat),
		RankTMT:           dashIfEmpty(emp.TmtGolongan),
		PositionName:      dashIfEmpty(emp.Position),
		PositionTMT:       dashIfEmpty(emp.TmtStart),
		GradeYears:        strconv.Itoa(emp.WorkingYear),
		GradeMonths:       strconv.Itoa(emp.WorkingMonth),
		TotalYears:        strconv.Itoa(emp.TotalWorkingYear),
		TotalMonths:       strconv.Itoa(emp.TotalWorkingMonth),
		EduInstitution:    dashIfEmpty(emp.University),
		EduYear:           Dash,
		EduLevel:          dashIfEmpty(emp.LastEducation),
		EduMajor:          dashIfEmpty(emp.Major),
		BirthDate:         dashIfEmpty(emp.BirthDate),
		MasaKpyad:         dashIfEmpty(emp.MasaKpyad),
		LastIncrementDate: emp.LastIncrementDate,
		NextIncrementDate: next,
		TransferNotes:     dashIfEmpty(emp.TransferNotes),
		Alert:             alert,
	}
	if emp.Gender == GenderMale {
		row.Sex = "L"
	}
	if emp.GradYear > 0 {
		row.EduYear = strconv.Itoa(emp.GradYear)
	}
	if alert {
		row.Remark = IncrementRemark
	}
	return row
}

// MergeRosterRow writes an edited DUK row back into the canonical
// record. Only the projected fields change; everything else is carried
// over from the existing record, or defaulted when the row is new. The
// unit is always stamped with the school name.
func MergeRosterRow(existing *Employee, row RosterRow, today time.Time, schoolName string) Employee {
	var emp Employee
	if existing != nil {
		emp = *existing
	}

	emp.ID = row.ID
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.FullName = row.Name
	emp.NIP = undash(row.NIP)
	emp.Karpeg = undash(row.Karpeg)
	if row.Sex == "L" {
		emp.Gender = GenderMale
	} else {
		emp.Gender = GenderFemale
	}
	emp.Pangkat = undash(row.RankName)
	emp.TmtGolongan = undash(row.RankTMT)
	emp.Position = undash(row.PositionName)
	emp.TmtStart = undash(row.PositionTMT)
	emp.WorkingYear = atoiOrZero(row.GradeYears)
	emp.WorkingMonth = atoiOrZero(row.GradeMonths)
	emp.TotalWorkingYear = atoiOrZero(row.TotalYears)
	emp.TotalWorkingMonth = atoiOrZero(row.TotalMonths)
	emp.University = undash(row.EduInstitution)
	emp.GradYear = atoiOrZero(row.EduYear)
	emp.LastEducation = undash(row.EduLevel)
	emp.Major = undash(row.EduMajor)
	emp.BirthDate = undash(row.BirthDate)
	emp.MasaKpyad = undash(row.MasaKpyad)
	emp.LastIncrementDate = undash(row.LastIncrementDate)
	emp.TransferNotes = undash(row.TransferNotes)

	if emp.Documents == nil {
		emp.Documents = []DocumentFile{}
	}
	if emp.FamilyMembers == nil {
		emp.FamilyMembers = []FamilyMember{}
	}
	if emp.CompletionPercentage == 0 {
		emp.CompletionPercentage = 20
	}
	if emp.VerificationStatus == "" {
		emp.VerificationStatus = VerificationPending
	}
	if emp.EmpStatus == "" {
		emp.EmpStatus = StatusGTT
	}
	if emp.EmpType == "" {
		emp.EmpType = EmpTypeTeacher
	}
	emp.Unit = schoolName
	emp.LastUpdated = today.Format(DateLayout)

	return emp
}

// addYears shifts a YYYY-MM-DD date by whole calendar years using Go's
// AddDate normalization, so Feb 29 rolls to Mar 1 in non-leap years.
// Empty or unparseable input yields Dash.
func addYears(dateStr string, years int) string {
	if dateStr == "" {
		return Dash
	}
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return Dash
	}
	return t.AddDate(years, 0, 0).Format(DateLayout)
}

// withinIncrementWindow reports whether the due date falls inside the
// alert window. Overdue dates stay in the window until the increment is
// processed and the record updated.
func withinIncrementWindow(targetDateStr string, today time.Time) bool {
	if targetDateStr == "" || targetDateStr == Dash {
		return false
	}
	target, err := time.Parse(DateLayout, targetDateStr)
	if err != nil {
		return false
	}
	diffDays := int(math.Ceil(target.Sub(today).Hours() / 24))
	return diffDays <= incrementAlertWindowDays
}

func dashIfEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return Dash
	}
	return v
}

func undash(v string) string {
	if v == Dash {
		return ""
	}
	return v
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
