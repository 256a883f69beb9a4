package personnel

// SectionTag identifies a group of record fields that applies to an
// employee. Which tags apply depends on employment status: civil-servant
// (ASN) records carry the rank/seniority fields, contract records carry
// the contract/honorarium fields.
type SectionTag string

const (
	SectionPersonal   SectionTag = "personal"
	SectionEmployment SectionTag = "employment"
	SectionASN        SectionTag = "asn"
	SectionContract   SectionTag = "contract"
	SectionEducation  SectionTag = "education"
	SectionFamily     SectionTag = "family"
	SectionDocuments  SectionTag = "documents"
	SectionReview     SectionTag = "review"
)

// ApplicableSections returns the field sections that apply to an
// employment status, in display order.
func ApplicableSections(empStatus string) []SectionTag {
	sections := []SectionTag{SectionPersonal, SectionEmployment}
	switch empStatus {
	case StatusPNS, StatusPPPK:
		sections = append(sections, SectionASN)
	default:
		sections = append(sections, SectionContract)
	}
	return append(sections, SectionEducation, SectionFamily, SectionDocuments, SectionReview)
}
