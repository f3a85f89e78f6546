package calc

import (
	"errors"
	"math"
)

var (
	ErrInvalidCircumference = errors.New("circumference out of range")
	ErrHipRequired          = errors.New("hip circumference required")
)

const (
	BodyFatEssential = "essential"
	BodyFatAthletes  = "athletes"
	BodyFatFitness   = "fitness"
	BodyFatAverage   = "average"
	BodyFatObese     = "obese"
)

type bodyFatBand struct {
	below    float64
	category string
}

var bodyFatBands = map[string][]bodyFatBand{
	SexMale: {
		{below: 6, category: BodyFatEssential},
		{below: 14, category: BodyFatAthletes},
		{below: 18, category: BodyFatFitness},
		{below: 25, category: BodyFatAverage},
	},
	SexFemale: {
		{below: 14, category: BodyFatEssential},
		{below: 21, category: BodyFatAthletes},
		{below: 25, category: BodyFatFitness},
		{below: 32, category: BodyFatAverage},
	},
}

type BodyFatInput struct {
	Sex      string  `json:"sex"`
	HeightCM float64 `json:"height_cm"`
	NeckCM   float64 `json:"neck_cm"`
	WaistCM  float64 `json:"waist_cm"`
	HipCM    float64 `json:"hip_cm"`
	WeightKG float64 `json:"weight_kg"`
}

type BodyFatResult struct {
	Percent    float64 `json:"percent"`
	Category   string  `json:"category"`
	FatMassKG  float64 `json:"fat_mass_kg,omitempty"`
	LeanMassKG float64 `json:"lean_mass_kg,omitempty"`
}

// BodyFat estimates body fat with the U.S. Navy circumference method.
func BodyFat(input BodyFatInput) (BodyFatResult, error) {
	sex, err := normalizeSex(input.Sex)
	if err != nil {
		return BodyFatResult{}, err
	}
	if !within(input.HeightCM, 100, 250) {
		return BodyFatResult{}, ErrInvalidHeight
	}
	if !within(input.NeckCM, 1, 250) || !within(input.WaistCM, 1, 250) {
		return BodyFatResult{}, ErrInvalidCircumference
	}
	if !within(input.WeightKG, 0, 300) {
		return BodyFatResult{}, ErrInvalidWeight
	}

	var density float64
	switch sex {
	case SexMale:
		if input.WaistCM <= input.NeckCM {
			return BodyFatResult{}, ErrInvalidCircumference
		}
		density = 1.0324 - 0.19077*math.Log10(input.WaistCM-input.NeckCM) + 0.15456*math.Log10(input.HeightCM)
	default:
		if input.HipCM == 0 {
			return BodyFatResult{}, ErrHipRequired
		}
		if !within(input.HipCM, 1, 250) {
			return BodyFatResult{}, ErrInvalidCircumference
		}
		if input.WaistCM+input.HipCM <= input.NeckCM {
			return BodyFatResult{}, ErrInvalidCircumference
		}
		density = 1.29579 - 0.35004*math.Log10(input.WaistCM+input.HipCM-input.NeckCM) + 0.22100*math.Log10(input.HeightCM)
	}

	percent := 495/density - 450
	if !(percent >= 0 && percent <= 75) {
		return BodyFatResult{}, ErrInvalidCircumference
	}
	percent = roundTenth(percent)

	result := BodyFatResult{
		Percent:  percent,
		Category: bodyFatCategory(sex, percent),
	}
	if input.WeightKG > 0 {
		result.FatMassKG = roundTenth(input.WeightKG * percent / 100)
		result.LeanMassKG = roundTenth(input.WeightKG - result.FatMassKG)
	}
	return result, nil
}

func bodyFatCategory(sex string, percent float64) string {
	for _, band := range bodyFatBands[sex] {
		if percent < band.below {
			return band.category
		}
	}
	return BodyFatObese
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
