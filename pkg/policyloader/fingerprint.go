package policyloader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// Fingerprint returns a content hash of p over its RFC 8785 canonical JSON
// form, so YAML and JSON renditions of the same policy hash identically.
func Fingerprint(p *policy.Policy) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("policyloader: marshal %s: %w", p.Version, err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("policyloader: canonicalise %s: %w", p.Version, err)
	}
	sum := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}
