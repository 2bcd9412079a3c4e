package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

// StepsPerCalorie converts a meal's calories into a walking recommendation:
// roughly 0.05 kcal burned per step, so 20 steps work off one kcal.
const StepsPerCalorie = 20

func RecommendedSteps(totalCalories int) int {
	if totalCalories <= 0 {
		return 0
	}
	return int(math.Round(float64(totalCalories) * StepsPerCalorie))
}

// GenerateResetCode returns a 6-digit numeric code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
