package registry

import (
	"strconv"
	"time"
)

// Headcount bracket codes in ascending order; index 5 and up means 20+
// employees.
var effectifOrder = []string{"00", "01", "02", "03", "11", "12", "21", "22", "31", "32", "41", "42", "51", "52", "53"}

// TrustScore computes a basic 0-100 confidence score for a company. A closed
// company scores 0 regardless of the other signals. An active one starts at
// 80 and gains up to 15 points for age (10, 5 and 2 year thresholds) and 5
// points for a 20+ headcount, capped at 100.
func TrustScore(estActif bool, dateCreation string, trancheEffectif string, now time.Time) int {
	if !estActif {
		return 0
	}
	score := 50 + 30

	if len(dateCreation) >= 4 {
		if year, err := strconv.Atoi(dateCreation[:4]); err == nil {
			switch age := now.Year() - year; {
			case age >= 10:
				score += 15
			case age >= 5:
				score += 10
			case age >= 2:
				score += 5
			}
		}
	}

	for i, code := range effectifOrder {
		if code == trancheEffectif {
			if i >= 5 {
				score += 5
			}
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}
