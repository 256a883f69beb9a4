// Package personnel holds the canonical employee record model and the
// pure derivation logic over it: completeness scoring, the seniority
// roster (DUK) projection and its inverse merge, section applicability
// and dashboard statistics.
package personnel

// Date fields hold YYYY-MM-DD strings, the format the school's records
// were captured in. Unparseable values degrade to display sentinels
// rather than failing the record.
const DateLayout = "2006-01-02"

const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Perempuan"
)

const (
	StatusPNS     = "PNS"
	StatusPPPK    = "PPPK"
	StatusHonorer = "Honorer"
	StatusGTT     = "GTT"
	StatusPTT     = "PTT"
)

const (
	VerificationPending  = "Belum Diverifikasi"
	VerificationApproved = "Disetujui"
	VerificationRevision = "Perlu Perbaikan"
)

const (
	DocStatusMissing  = "missing"
	DocStatusUploaded = "uploaded"
	DocStatusVerified = "verified"
)

const (
	EmpTypeTeacher = "Guru"
	EmpTypeStaff   = "Tendik"
)

type FamilyMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	BirthDate   string `json:"birthDate"`
	Education   string `json:"education,omitempty"`
	IsDependent bool   `json:"isDependent"`
	Status      string `json:"status,omitempty"`
}

// DocumentFile is an uploaded (or placeholder) document attached to a
// record. DefinitionID binds it to the registry entry it satisfies; Type
// keeps the definition's display name for records imported before ids
// existed and is rewritten when the definition is renamed.
type DocumentFile struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definitionId,omitempty"`
	Type         string `json:"type"`
	FileName     string `json:"fileName,omitempty"`
	UploadDate   string `json:"uploadDate,omitempty"`
	URL          string `json:"url,omitempty"`
	Status       string `json:"status"`
	Group        string `json:"group,omitempty"`
}

type Employee struct {
	ID string `json:"id"`

	// Personal
	FullName      string `json:"fullName"`
	FrontTitle    string `json:"frontTitle,omitempty"`
	BackTitle     string `json:"backTitle,omitempty"`
	NIK           string `json:"nik"`
	NIP           string `json:"nip,omitempty"`
	NUPTK         string `json:"nuptk,omitempty"`
	BirthPlace    string `json:"birthPlace"`
	BirthDate     string `json:"birthDate"`
	Gender        string `json:"gender"`
	Religion      string `json:"religion"`
	MaritalStatus string `json:"maritalStatus"`
	Address       string `json:"address"`
	Village       string `json:"village,omitempty"`
	District      string `json:"district,omitempty"`
	City          string `json:"city,omitempty"`
	Province      string `json:"province,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`

	// Employment
	EmpStatus     string  `json:"empStatus"`
	EmpType       string  `json:"empType"`
	Position      string  `json:"position"`
	MainDuty      string  `json:"mainDuty,omitempty"`
	Unit          string  `json:"unit"`
	Subject       string  `json:"subject,omitempty"`
	TmtStart      string  `json:"tmtStart,omitempty"`
	TeachingHours int     `json:"teachingHours,omitempty"`
	SKNumber      string  `json:"skNumber,omitempty"`
	SKOfficial    string  `json:"skOfficial,omitempty"`

	// ASN / seniority
	ASNType          string `json:"asnType,omitempty"`
	Golongan         string `json:"golongan,omitempty"`
	Pangkat          string `json:"pangkat,omitempty"`
	TmtGolongan      string `json:"tmtGolongan,omitempty"`
	WorkingYear      int    `json:"workingYear,omitempty"`
	WorkingMonth     int    `json:"workingMonth,omitempty"`
	TotalWorkingYear int    `json:"totalWorkingYear,omitempty"`
	TotalWorkingMonth int   `json:"totalWorkingMonth,omitempty"`
	Karpeg           string `json:"karpeg,omitempty"`
	Taspen           string `json:"taspen,omitempty"`
	BPJSKes          string `json:"bpjsKes,omitempty"`
	BPJSKet          string `json:"bpjsKet,omitempty"`
	NPWP             string `json:"npwp,omitempty"`
	SalaryAccount    string `json:"salaryAccount,omitempty"`
	BankName         string `json:"bankName,omitempty"`
	IsCertified      bool   `json:"isCertified,omitempty"`
	CertNumber       string `json:"certNumber,omitempty"`
	NRG              string `json:"nrg,omitempty"`
	CertYear         int    `json:"certYear,omitempty"`

	// Periodic increment tracking
	MasaKpyad         string `json:"masaKpyad,omitempty"`
	LastIncrementDate string `json:"tglSKBerkala,omitempty"`
	TransferNotes     string `json:"catatanMutasi,omitempty"`

	// Contract staff
	ContractNumber string  `json:"contractNumber,omitempty"`
	ContractStart  string  `json:"contractStart,omitempty"`
	ContractEnd    string  `json:"contractEnd,omitempty"`
	HonorSource    string  `json:"honorSource,omitempty"`
	HonorAmount    float64 `json:"honorAmount,omitempty"`
	HonorAccount   string  `json:"honorAccount,omitempty"`
	HonorBank      string  `json:"honorBank,omitempty"`

	// Education
	LastEducation string `json:"lastEducation"`
	Major         string `json:"major,omitempty"`
	University    string `json:"university,omitempty"`
	GradYear      int    `json:"gradYear,omitempty"`
	DiplomaNumber string `json:"diplomaNumber,omitempty"`

	FamilyMembers []FamilyMember `json:"familyMembers"`
	Documents     []DocumentFile `json:"documents"`

	// Review state, admin-owned
	CompletionPercentage int    `json:"completionPercentage"`
	VerificationStatus   string `json:"verificationStatus"`
	AdminNotes           string `json:"adminNotes,omitempty"`
	LastUpdated          string `json:"lastUpdated"`
}

// DocumentFor returns the record's document bound to the definition:
// matched by definition id when present, by display name otherwise.
func (e *Employee) DocumentFor(definitionID, definitionName string) (DocumentFile, bool) {
	for _, doc := range e.Documents {
		if definitionID != "" && doc.DefinitionID == definitionID {
			return doc, true
		}
	}
	for _, doc := range e.Documents {
		if doc.DefinitionID == "" && doc.Type == definitionName {
			return doc, true
		}
	}
	return DocumentFile{}, false
}

// Clone returns a deep copy: the document and family slices are copied
// so the result can be mutated without touching the original.
func (e Employee) Clone() Employee {
	out := e
	if e.Documents != nil {
		out.Documents = make([]DocumentFile, len(e.Documents))
		copy(out.Documents, e.Documents)
	}
	if e.FamilyMembers != nil {
		out.FamilyMembers = make([]FamilyMember, len(e.FamilyMembers))
		copy(out.FamilyMembers, e.FamilyMembers)
	}
	return out
}

// IsASN reports whether the employee holds civil-servant status.
func (e *Employee) IsASN() bool {
	return e.EmpStatus == StatusPNS || e.EmpStatus == StatusPPPK
}
