// Package calc holds the closed-form nutrition and body calculators. None of
// them keep state or read the clock.
package calc

import (
	"errors"
	"math"
	"strings"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

var (
	ErrInvalidSex           = errors.New("invalid sex")
	ErrInvalidAge           = errors.New("age out of range")
	ErrInvalidHeight        = errors.New("height out of range")
	ErrInvalidWeight        = errors.New("weight out of range")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
	ErrInvalidGoal          = errors.New("invalid goal")
)

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var goalCalorieAdjustments = map[string]float64{
	GoalLose:     -500,
	GoalMaintain: 0,
	GoalGain:     300,
}

var proteinGramsPerKG = map[string]float64{
	GoalLose:     2.2,
	GoalMaintain: 1.8,
	GoalGain:     2.0,
}

const (
	fatCalorieShare     = 0.25
	caloriesPerGramProt = 4
	caloriesPerGramCarb = 4
	caloriesPerGramFat  = 9
	minCaloriesFemale   = 1200
	minCaloriesMale     = 1500
)

type MacroInput struct {
	Sex           string  `json:"sex"`
	Age           int     `json:"age"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

type MacroResult struct {
	BMR      int `json:"bmr"`
	TDEE     int `json:"tdee"`
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

func Macros(input MacroInput) (MacroResult, error) {
	sex, err := normalizeSex(input.Sex)
	if err != nil {
		return MacroResult{}, err
	}
	if input.Age < 14 || input.Age > 100 {
		return MacroResult{}, ErrInvalidAge
	}
	if !within(input.HeightCM, 100, 250) {
		return MacroResult{}, ErrInvalidHeight
	}
	if !within(input.WeightKG, 30, 300) {
		return MacroResult{}, ErrInvalidWeight
	}
	multiplier, ok := activityMultipliers[strings.ToLower(strings.TrimSpace(input.ActivityLevel))]
	if !ok {
		return MacroResult{}, ErrInvalidActivityLevel
	}
	goal := strings.ToLower(strings.TrimSpace(input.Goal))
	adjustment, ok := goalCalorieAdjustments[goal]
	if !ok {
		return MacroResult{}, ErrInvalidGoal
	}

	bmr := MifflinStJeorBMR(sex, input.WeightKG, input.HeightCM, input.Age)
	tdee := bmr * multiplier

	calories := tdee + adjustment
	floor := float64(minCaloriesFemale)
	if sex == SexMale {
		floor = minCaloriesMale
	}
	if calories < floor {
		calories = floor
	}

	protein := input.WeightKG * proteinGramsPerKG[goal]
	fat := calories * fatCalorieShare / caloriesPerGramFat
	carbs := (calories - protein*caloriesPerGramProt - fat*caloriesPerGramFat) / caloriesPerGramCarb
	if carbs < 0 {
		carbs = 0
	}

	return MacroResult{
		BMR:      int(math.Round(bmr)),
		TDEE:     int(math.Round(tdee)),
		Calories: int(math.Round(calories)),
		ProteinG: int(math.Round(protein)),
		CarbsG:   int(math.Round(carbs)),
		FatG:     int(math.Round(fat)),
	}, nil
}

// MifflinStJeorBMR returns the basal metabolic rate in kcal/day.
func MifflinStJeorBMR(sex string, weightKG float64, heightCM float64, age int) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// within is false for NaN, so non-finite input never passes a range check.
func within(value float64, low float64, high float64) bool {
	return value >= low && value <= high
}

func normalizeSex(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	default:
		return "", ErrInvalidSex
	}
}
