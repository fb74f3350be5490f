package styles

import "strings"

// UnknownStyle is reported when no style reaches the confidence floor.
const UnknownStyle = "Unknown"

// confidenceFloor is the minimum score fraction a style must reach to be
// reported at all. Below it, a weak best match is noise, not a detection.
const confidenceFloor = 0.3

// Classification is the outcome of scoring one reference.
type Classification struct {
	Style      string  `json:"style"`
	Confidence float64 `json:"confidence"`
}

// Classify scores a reference against every registered style and returns
// the best match. Each style earns one point for any structure pattern
// hit, one for its year pattern, one for its author pattern, and a
// fractional point for punctuation token presence; the confidence is the
// score normalized by the style's maximum. Ties go to the style
// registered first. Anything under the confidence floor comes back as
// UnknownStyle with zero confidence.
func (r *Registry) Classify(reference string) Classification {
	reference = strings.TrimSpace(reference)
	best := Classification{Style: UnknownStyle}

	for _, cr := range r.rules {
		score := 0.0
		maxScore := float64(len(cr.structure) + 3)

		for _, re := range cr.structure {
			if re.MatchString(reference) {
				score++
				break
			}
		}
		if cr.year.MatchString(reference) {
			score++
		}
		if cr.author.MatchString(reference) {
			score++
		}

		punctHits := 0
		for _, token := range cr.rule.Punctuation {
			if strings.Contains(reference, token) {
				punctHits++
			}
		}
		score += float64(punctHits) / float64(len(cr.rule.Punctuation))

		if confidence := score / maxScore; confidence > best.Confidence {
			best = Classification{Style: cr.rule.Name, Confidence: confidence}
		}
	}

	if best.Confidence < confidenceFloor {
		return Classification{Style: UnknownStyle, Confidence: 0.0}
	}
	return best
}

// Histogram counts classifications per style name.
func Histogram(classifications []Classification) map[string]int {
	counts := make(map[string]int)
	for _, c := range classifications {
		counts[c.Style]++
	}
	return counts
}
