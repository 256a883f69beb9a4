package personnel

import "testing"

func TestApplicableSectionsASN(t *testing.T) {
	for _, status := range []string{StatusPNS, StatusPPPK} {
		sections := ApplicableSections(status)
		if !containsSection(sections, SectionASN) {
			t.Fatalf("%s: expected ASN section", status)
		}
		if containsSection(sections, SectionContract) {
			t.Fatalf("%s: contract section must not apply", status)
		}
	}
}

func TestApplicableSectionsContract(t *testing.T) {
	for _, status := range []string{StatusHonorer, StatusGTT, StatusPTT} {
		sections := ApplicableSections(status)
		if !containsSection(sections, SectionContract) {
			t.Fatalf("%s: expected contract section", status)
		}
		if containsSection(sections, SectionASN) {
			t.Fatalf("%s: ASN section must not apply", status)
		}
	}
}

func TestApplicableSectionsCommon(t *testing.T) {
	sections := ApplicableSections(StatusGTT)
	for _, tag := range []SectionTag{SectionPersonal, SectionEmployment, SectionEducation, SectionFamily, SectionDocuments, SectionReview} {
		if !containsSection(sections, tag) {
			t.Fatalf("expected common section %s", tag)
		}
	}
}

func containsSection(sections []SectionTag, tag SectionTag) bool {
	for _, s := range sections {
		if s == tag {
			return true
		}
	}
	return false
}
