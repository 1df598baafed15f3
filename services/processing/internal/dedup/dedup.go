// Package dedup collapses records that describe the same posting.
package dedup

import "empleos/services/processing/internal/models"

// Dedup keeps the first record seen for each identity key, in input order.
// Records without a job id or URL cannot be identified and are always kept.
func Dedup(records []models.CanonicalJobRecord) []models.CanonicalJobRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]models.CanonicalJobRecord, 0, len(records))

	for _, r := range records {
		key := r.IdentityKey()
		if key == "" {
			unique = append(unique, r)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
