package models

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

const (
	ChallengeTypeInterview = "interview"
	ChallengeTypeScenario  = "scenario"
)

// ChallengeTypes lists every quota-tracked challenge type in display order.
var ChallengeTypes = []string{ChallengeTypeInterview, ChallengeTypeScenario}

func IsValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func IsValidChallengeType(t string) bool {
	switch t {
	case ChallengeTypeInterview, ChallengeTypeScenario:
		return true
	}
	return false
}
