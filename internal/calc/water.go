package calc

import (
	"errors"
	"math"
)

const (
	waterMLPerKG            = 35
	waterMLPerExerciseBlock = 350
	exerciseBlockMinutes    = 30
	hotClimateExtraML       = 500
	waterRoundingML         = 50
	glassML                 = 250
)

var ErrInvalidExerciseMinutes = errors.New("exercise minutes out of range")

type WaterInput struct {
	WeightKG        float64 `json:"weight_kg"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	HotClimate      bool    `json:"hot_climate"`
}

type WaterResult struct {
	MilliLiters int     `json:"ml"`
	Liters      float64 `json:"liters"`
	Glasses     int     `json:"glasses"`
}

func WaterIntake(input WaterInput) (WaterResult, error) {
	if !within(input.WeightKG, 20, 300) {
		return WaterResult{}, ErrInvalidWeight
	}
	if input.ExerciseMinutes < 0 || input.ExerciseMinutes > 24*60 {
		return WaterResult{}, ErrInvalidExerciseMinutes
	}

	total := input.WeightKG * waterMLPerKG
	total += float64(input.ExerciseMinutes) / exerciseBlockMinutes * waterMLPerExerciseBlock
	if input.HotClimate {
		total += hotClimateExtraML
	}

	ml := int(math.Ceil(total/waterRoundingML)) * waterRoundingML
	return WaterResult{
		MilliLiters: ml,
		Liters:      math.Round(float64(ml)/100) / 10,
		Glasses:     int(math.Ceil(float64(ml) / glassML)),
	}, nil
}
