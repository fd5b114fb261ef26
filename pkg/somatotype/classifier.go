package somatotype

type DominantType string

const (
	Endomorph     DominantType = "Endomorfo"
	Mesomorph     DominantType = "Mesomorfo"
	Ectomorph     DominantType = "Ectomorfo"
	EndoMesomorph DominantType = "Endo-Mesomorfo"
	EctoMesomorph DominantType = "Ecto-Mesomorfo"
	Balanced      DominantType = "Balanceado"
)

// Classify reduces the three components to a single label. Rules are checked
// in order and the first match wins, so near ties are resolved towards endo
// and then meso; for example (1, 3, 3) is Endo-Mesomorfo.
func Classify(endo, meso, ecto float64) DominantType {
	switch {
	case endo > meso && endo > ecto:
		return Endomorph
	case meso > endo && meso > ecto:
		return Mesomorph
	case ecto > endo && ecto > meso:
		return Ectomorph
	case endo+meso > ecto:
		return EndoMesomorph
	case ecto+meso > endo:
		return EctoMesomorph
	default:
		return Balanced
	}
}

func (s Scores) Dominant() DominantType {
	return Classify(s.Endomorphy, s.Mesomorphy, s.Ectomorphy)
}
