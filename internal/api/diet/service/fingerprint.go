package dietService

import (
	"DietApp/internal/api/diet"
	"DietApp/pkg/somatotype"
	"crypto/sha256"
	"encoding/hex"
)

type fingerprintInput struct {
	Profile  diet.DietProfile        `json:"profile"`
	Scores   somatotype.Scores       `json:"scores"`
	Dominant somatotype.DominantType `json:"dominant"`
	BMR      int                     `json:"bmr"`
	Provider string                  `json:"provider"`
}

// Fingerprint identifies a generation request for plan caching. Equal inputs
// give equal fingerprints.
func Fingerprint(p diet.DietProfile, scores somatotype.Scores, dominant somatotype.DominantType, bmr int, provider string) string {
	b, _ := json.Marshal(fingerprintInput{
		Profile:  p,
		Scores:   scores,
		Dominant: dominant,
		BMR:      bmr,
		Provider: provider,
	})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
