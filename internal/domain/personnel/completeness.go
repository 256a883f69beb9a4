package personnel

import (
	"math"
	"strings"

	"simpeg/internal/domain/registry"
)

// Completeness scores a record against the current registry. The
// denominator is the five core identity fields plus every required
// definition; the numerator counts filled fields and required documents
// that are present (uploaded or verified, not missing).
func Completeness(emp *Employee, defs []registry.DocumentDefinition) int {
	fixed := []string{emp.FullName, emp.NIK, emp.BirthPlace, emp.Phone, emp.Email}

	total := len(fixed)
	filled := 0
	for _, v := range fixed {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}

	for _, def := range defs {
		if !def.IsRequired {
			continue
		}
		total++
		doc, ok := emp.DocumentFor(def.ID, def.Name)
		if ok && doc.Status != DocStatusMissing {
			filled++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(filled) / float64(total) * 100))
}
