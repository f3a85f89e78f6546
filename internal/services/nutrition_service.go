package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

var (
	ErrFoodEntryNotFound    = errors.New("food entry not found")
	ErrFoodNameInvalid      = errors.New("food name invalid")
	ErrFoodMealInvalid      = errors.New("food meal invalid")
	ErrFoodServingsInvalid  = errors.New("food servings invalid")
	ErrFoodNutrientsInvalid = errors.New("food nutrients invalid")
	ErrSummaryRangeInvalid  = errors.New("summary range invalid")
)

const (
	maxFoodNameLength   = 120
	maxFoodServings     = 50
	maxSummaryRangeDays = 92
)

var mealOrder = []string{models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack}

type FoodEntryStore interface {
	FindByUserAndID(userID uint, entryID uint) (models.FoodEntry, bool, error)
	ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.FoodEntry, error)
	Create(entry *models.FoodEntry) error
	Save(entry *models.FoodEntry) error
	DeleteByUserAndID(userID uint, entryID uint) (bool, error)
}

type FoodEntryInput struct {
	Date     string
	Meal     string
	Name     string
	Servings float64
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	FiberG   float64
}

type NutrientTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

type MealGroup struct {
	Meal    string             `json:"meal"`
	Entries []models.FoodEntry `json:"entries"`
	Totals  NutrientTotals     `json:"totals"`
}

type FoodDay struct {
	Date   string         `json:"date"`
	Meals  []MealGroup    `json:"meals"`
	Totals NutrientTotals `json:"totals"`
}

type DayTotals struct {
	Date string `json:"date"`
	NutrientTotals
}

type FoodSummary struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Days       []DayTotals    `json:"days"`
	LoggedDays int            `json:"logged_days"`
	Totals     NutrientTotals `json:"totals"`
	Average    NutrientTotals `json:"average"`
}

type NutritionService struct {
	entries FoodEntryStore
}

func NewNutritionService(entries FoodEntryStore) *NutritionService {
	return &NutritionService{entries: entries}
}

func (service *NutritionService) AddEntry(userID uint, input FoodEntryInput) (models.FoodEntry, error) {
	entry := models.FoodEntry{UserID: userID}
	if err := applyFoodEntryInput(&entry, input); err != nil {
		return models.FoodEntry{}, err
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.FoodEntry{}, err
	}
	return entry, nil
}

func (service *NutritionService) Entry(userID uint, entryID uint) (models.FoodEntry, error) {
	entry, found, err := service.entries.FindByUserAndID(userID, entryID)
	if err != nil {
		return models.FoodEntry{}, err
	}
	if !found {
		return models.FoodEntry{}, ErrFoodEntryNotFound
	}
	return entry, nil
}

func (service *NutritionService) UpdateEntry(userID uint, entryID uint, input FoodEntryInput) (models.FoodEntry, error) {
	entry, found, err := service.entries.FindByUserAndID(userID, entryID)
	if err != nil {
		return models.FoodEntry{}, err
	}
	if !found {
		return models.FoodEntry{}, ErrFoodEntryNotFound
	}
	if err := applyFoodEntryInput(&entry, input); err != nil {
		return models.FoodEntry{}, err
	}
	if err := service.entries.Save(&entry); err != nil {
		return models.FoodEntry{}, err
	}
	return entry, nil
}

func (service *NutritionService) DeleteEntry(userID uint, entryID uint) error {
	deleted, err := service.entries.DeleteByUserAndID(userID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFoodEntryNotFound
	}
	return nil
}

func (service *NutritionService) Day(userID uint, day time.Time) (FoodDay, error) {
	entries, err := service.entries.ListByUserRange(userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return FoodDay{}, err
	}

	byMeal := make(map[string][]models.FoodEntry, len(mealOrder))
	for _, entry := range entries {
		byMeal[entry.Meal] = append(byMeal[entry.Meal], entry)
	}

	result := FoodDay{Date: FormatDay(day), Meals: make([]MealGroup, 0, len(mealOrder))}
	for _, meal := range mealOrder {
		group := MealGroup{Meal: meal, Entries: byMeal[meal]}
		if group.Entries == nil {
			group.Entries = []models.FoodEntry{}
		}
		for _, entry := range group.Entries {
			group.Totals.add(entry)
		}
		result.Totals.plus(group.Totals)
		result.Meals = append(result.Meals, group)
	}
	result.Totals.round()
	for index := range result.Meals {
		result.Meals[index].Totals.round()
	}
	return result, nil
}

// Averages count only days with at least one entry.
func (service *NutritionService) Summary(userID uint, from time.Time, to time.Time) (FoodSummary, error) {
	if to.Before(from) || !to.Before(from.AddDate(0, 0, maxSummaryRangeDays)) {
		return FoodSummary{}, ErrSummaryRangeInvalid
	}
	entries, err := service.entries.ListByUserRange(userID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return FoodSummary{}, err
	}

	perDay := make(map[string]*NutrientTotals)
	for _, entry := range entries {
		key := FormatDay(entry.Date)
		totals, ok := perDay[key]
		if !ok {
			totals = &NutrientTotals{}
			perDay[key] = totals
		}
		totals.add(entry)
	}

	summary := FoodSummary{From: FormatDay(from), To: FormatDay(to), Days: make([]DayTotals, 0)}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := FormatDay(day)
		totals := NutrientTotals{}
		if logged, ok := perDay[key]; ok {
			totals = *logged
			summary.LoggedDays++
		}
		summary.Totals.plus(totals)
		totals.round()
		summary.Days = append(summary.Days, DayTotals{Date: key, NutrientTotals: totals})
	}

	if summary.LoggedDays > 0 {
		summary.Average = summary.Totals.divided(float64(summary.LoggedDays))
	}
	summary.Totals.round()
	summary.Average.round()
	return summary, nil
}

func applyFoodEntryInput(entry *models.FoodEntry, input FoodEntryInput) error {
	day, err := ParseDay(input.Date)
	if err != nil {
		return err
	}
	meal := strings.ToLower(strings.TrimSpace(input.Meal))
	if !isKnownMeal(meal) {
		return ErrFoodMealInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxFoodNameLength {
		return ErrFoodNameInvalid
	}
	servings := input.Servings
	if servings == 0 {
		servings = 1
	}
	if !(servings > 0 && servings <= maxFoodServings) {
		return ErrFoodServingsInvalid
	}
	for _, value := range []float64{input.Calories, input.ProteinG, input.CarbsG, input.FatG, input.FiberG} {
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return ErrFoodNutrientsInvalid
		}
	}

	entry.Date = day
	entry.Meal = meal
	entry.Name = name
	entry.Servings = servings
	entry.Calories = input.Calories
	entry.ProteinG = input.ProteinG
	entry.CarbsG = input.CarbsG
	entry.FatG = input.FatG
	entry.FiberG = input.FiberG
	return nil
}

func isKnownMeal(meal string) bool {
	for _, known := range mealOrder {
		if meal == known {
			return true
		}
	}
	return false
}

func (totals *NutrientTotals) add(entry models.FoodEntry) {
	totals.Calories += entry.Calories * entry.Servings
	totals.ProteinG += entry.ProteinG * entry.Servings
	totals.CarbsG += entry.CarbsG * entry.Servings
	totals.FatG += entry.FatG * entry.Servings
	totals.FiberG += entry.FiberG * entry.Servings
}

func (totals *NutrientTotals) plus(other NutrientTotals) {
	totals.Calories += other.Calories
	totals.ProteinG += other.ProteinG
	totals.CarbsG += other.CarbsG
	totals.FatG += other.FatG
	totals.FiberG += other.FiberG
}

func (totals NutrientTotals) divided(by float64) NutrientTotals {
	return NutrientTotals{
		Calories: totals.Calories / by,
		ProteinG: totals.ProteinG / by,
		CarbsG:   totals.CarbsG / by,
		FatG:     totals.FatG / by,
		FiberG:   totals.FiberG / by,
	}
}

func (totals *NutrientTotals) round() {
	totals.Calories = math.Round(totals.Calories*10) / 10
	totals.ProteinG = math.Round(totals.ProteinG*10) / 10
	totals.CarbsG = math.Round(totals.CarbsG*10) / 10
	totals.FatG = math.Round(totals.FatG*10) / 10
	totals.FiberG = math.Round(totals.FiberG*10) / 10
}
