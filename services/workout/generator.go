package workout

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// BMI categories and goals accepted by the generator.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"

	GoalGetFit       = "Get Fit"
	GoalLoseWeight   = "Lose Weight"
	GoalGainWeight   = "Gain Weight"
	GoalBodyBuilding = "Body Building"
)

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Exercise is one slot in a day plan: either rep-based (Reps set) or
// time-based (Duration set).
type Exercise struct {
	Name     string `json:"name"`
	Reps     string `json:"reps,omitempty"`
	Duration string `json:"duration,omitempty"`
	Notes    string `json:"notes"`
}

// DayPlan holds the 8 exercises scheduled for one weekday.
type DayPlan struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

// Plan is the full generated document stored on the WorkoutPlan row.
type Plan struct {
	UserEmail   string    `json:"user_email"`
	BMI         float64   `json:"bmi"`
	BMICategory string    `json:"bmi_category"`
	Goal        string    `json:"goal"`
	WeeklyPlan  []DayPlan `json:"weekly_plan"`
}

type exerciseTemplate struct {
	cardio      []string
	strength    []string
	flexibility []string
}

// Exercise pools per goal and BMI category.
var exerciseTemplates = map[string]map[string]exerciseTemplate{
	GoalGetFit: {
		CategoryUnderweight: {
			cardio:      []string{"Treadmill Walking", "Stationary Bike", "Elliptical", "Light Jogging"},
			strength:    []string{"Push-ups", "Bodyweight Squats", "Lunges", "Plank", "Mountain Climbers", "Dumbbell Rows"},
			flexibility: []string{"Yoga Stretches", "Dynamic Stretching"},
		},
		CategoryNormal: {
			cardio:      []string{"Treadmill Running", "Cycling", "Rowing Machine", "Jump Rope"},
			strength:    []string{"Push-ups", "Pull-ups", "Squats", "Deadlifts", "Bench Press", "Shoulder Press", "Lat Pulldowns"},
			flexibility: []string{"Full Body Stretching", "Foam Rolling"},
		},
		CategoryOverweight: {
			cardio:      []string{"Treadmill Walking", "Swimming", "Elliptical", "Stationary Bike"},
			strength:    []string{"Wall Push-ups", "Assisted Squats", "Seated Rows", "Leg Press", "Chest Press", "Leg Curls"},
			flexibility: []string{"Gentle Stretching", "Chair Yoga"},
		},
		CategoryObese: {
			cardio:      []string{"Treadmill Walking", "Water Aerobics", "Recumbent Bike", "Chair Exercises"},
			strength:    []string{"Wall Push-ups", "Seated Exercises", "Resistance Band Exercises", "Light Weights"},
			flexibility: []string{"Seated Stretching", "Gentle Mobility Exercises"},
		},
	},
	GoalLoseWeight: {
		CategoryUnderweight: {
			cardio:      []string{"Light Cardio Walking", "Gentle Cycling", "Swimming"},
			strength:    []string{"Bodyweight Exercises", "Light Resistance Training", "Core Strengthening"},
			flexibility: []string{"Yoga", "Pilates"},
		},
		CategoryNormal: {
			cardio:      []string{"High Intensity Interval Training", "Running", "Cycling", "Rowing", "Burpees"},
			strength:    []string{"Circuit Training", "Compound Movements", "Kettlebell Swings", "Battle Ropes"},
			flexibility: []string{"Dynamic Warm-up", "Cool-down Stretches"},
		},
		CategoryOverweight: {
			cardio:      []string{"Brisk Walking", "Swimming", "Elliptical", "Low-impact Aerobics", "Cycling"},
			strength:    []string{"Full Body Circuit", "Functional Movements", "Core Training", "Resistance Exercises"},
			flexibility: []string{"Joint Mobility", "Stretching Routine"},
		},
		CategoryObese: {
			cardio:      []string{"Walking", "Water Exercises", "Seated Cardio", "Low-impact Movement"},
			strength:    []string{"Chair Exercises", "Resistance Bands", "Light Weight Training", "Isometric Exercises"},
			flexibility: []string{"Gentle Stretching", "Range of Motion Exercises"},
		},
	},
	GoalGainWeight: {
		CategoryUnderweight: {
			cardio:      []string{"Light Walking", "Easy Cycling"},
			strength:    []string{"Heavy Compound Lifts", "Squats", "Deadlifts", "Bench Press", "Pull-ups", "Overhead Press", "Barbell Rows"},
			flexibility: []string{"Dynamic Stretching", "Mobility Work"},
		},
		CategoryNormal: {
			cardio:      []string{"Moderate Cardio", "HIIT"},
			strength:    []string{"Progressive Overload Training", "Compound Movements", "Isolation Exercises", "Heavy Lifting"},
			flexibility: []string{"Pre-workout Mobility", "Post-workout Stretching"},
		},
		CategoryOverweight: {
			cardio:      []string{"Moderate Cardio", "Interval Training"},
			strength:    []string{"Strength Training", "Functional Movements", "Progressive Loading"},
			flexibility: []string{"Full Body Stretching", "Mobility Training"},
		},
		CategoryObese: {
			cardio:      []string{"Low-impact Cardio", "Walking", "Swimming"},
			strength:    []string{"Basic Strength Training", "Functional Exercises", "Progressive Training"},
			flexibility: []string{"Joint Mobility", "Flexibility Training"},
		},
	},
	GoalBodyBuilding: {
		CategoryUnderweight: {
			cardio:      []string{"Minimal Cardio", "Walking"},
			strength:    []string{"Heavy Compound Lifts", "Isolation Exercises", "Progressive Overload", "Split Training"},
			flexibility: []string{"Targeted Stretching", "Muscle Recovery"},
		},
		CategoryNormal: {
			cardio:      []string{"Moderate Cardio", "HIIT"},
			strength:    []string{"Advanced Lifting", "Muscle Isolation", "Volume Training", "Progressive Overload"},
			flexibility: []string{"Muscle-specific Stretching", "Recovery Work"},
		},
		CategoryOverweight: {
			cardio:      []string{"Moderate Cardio", "Fat Burning Cardio"},
			strength:    []string{"Strength Training", "Muscle Building", "Compound Movements"},
			flexibility: []string{"Full Body Mobility", "Recovery Stretching"},
		},
		CategoryObese: {
			cardio:      []string{"Progressive Cardio", "Low-impact Training"},
			strength:    []string{"Foundation Building", "Progressive Strength Training", "Functional Movements"},
			flexibility: []string{"Joint Health", "Basic Flexibility"},
		},
	},
}

// CalculateBMI computes BMI from weight (kg) and height (cm), rounded to one decimal.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*10) / 10
}

// BMICategory maps a BMI value to its category label.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

var cardioKeywords = []string{
	"Treadmill", "Cycling", "Running", "Walking", "Elliptical", "Rowing",
	"Swimming", "HIIT", "Jump Rope", "Stationary Bike", "Recumbent Bike",
}

func isCardio(name string) bool {
	for _, kw := range cardioKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// exerciseDetails fills in the reps/duration prescription for one exercise.
func exerciseDetails(name, goal, category string) Exercise {
	// Slot #1 of every day is always a fixed Bicep Curl set
	if name == "Bicep Curl" {
		return Exercise{
			Name:  "Bicep Curl",
			Reps:  "20 reps",
			Notes: "Use appropriate dumbbell weight for your fitness level",
		}
	}

	if isCardio(name) {
		var duration string
		switch {
		case goal == GoalLoseWeight && category == CategoryObese:
			duration = "10 min"
		case goal == GoalLoseWeight && category == CategoryOverweight:
			duration = "15 min"
		case goal == GoalLoseWeight:
			duration = "20 min"
		case goal == GoalBodyBuilding:
			duration = "10 min"
		case category == CategoryObese:
			duration = "8 min"
		default:
			duration = "12 min"
		}
		return Exercise{
			Name:     name,
			Duration: duration,
			Notes:    "Maintain steady pace, adjust intensity as needed",
		}
	}

	var reps, sets int
	switch goal {
	case GoalBodyBuilding:
		sets = 4
		if category == CategoryUnderweight {
			reps = 8
		} else {
			reps = 10
		}
	case GoalGainWeight:
		sets = 3
		if category == CategoryUnderweight {
			reps = 6
		} else {
			reps = 8
		}
	case GoalLoseWeight:
		sets = 3
		if category == CategoryObese {
			reps = 8
		} else {
			reps = 12
		}
	default: // Get Fit
		sets = 3
		if category == CategoryObese {
			reps = 6
		} else {
			reps = 10
		}
	}
	return Exercise{
		Name:  name,
		Reps:  fmt.Sprintf("%d reps × %d sets", reps, sets),
		Notes: "Rest 60-90 seconds between sets",
	}
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// GeneratePlan builds the complete 7-day plan for a user. Falls back to the
// "Get Fit" templates for unknown goals so a stale profile never breaks plan
// generation.
func GeneratePlan(rng *rand.Rand, email string, weightKg, heightCm float64, goal string) Plan {
	bmi := CalculateBMI(weightKg, heightCm)
	category := BMICategory(bmi)

	goalTemplates, ok := exerciseTemplates[goal]
	if !ok {
		goal = GoalGetFit
		goalTemplates = exerciseTemplates[goal]
	}
	template := goalTemplates[category]

	all := make([]string, 0, len(template.cardio)+len(template.strength)+len(template.flexibility))
	all = append(all, template.cardio...)
	all = append(all, template.strength...)
	all = append(all, template.flexibility...)

	// Variety mix depends on the goal
	cardioCount := 2
	strengthCount := 3
	switch goal {
	case GoalLoseWeight:
		cardioCount = 3
	case GoalBodyBuilding:
		cardioCount, strengthCount = 1, 5
	case GoalGainWeight:
		strengthCount = 4
	}
	flexibilityCount := 7 - cardioCount - strengthCount

	weekly := make([]DayPlan, 0, len(weekdays))
	for _, day := range weekdays {
		selected := make([]string, 0, 7)
		for i := 0; i < cardioCount && len(template.cardio) > 0; i++ {
			selected = append(selected, pick(rng, template.cardio))
		}
		for i := 0; i < strengthCount && len(template.strength) > 0; i++ {
			selected = append(selected, pick(rng, template.strength))
		}
		for i := 0; i < flexibilityCount && len(template.flexibility) > 0; i++ {
			selected = append(selected, pick(rng, template.flexibility))
		}
		for len(selected) < 7 {
			selected = append(selected, pick(rng, all))
		}

		exercises := make([]Exercise, 0, 8)
		exercises = append(exercises, exerciseDetails("Bicep Curl", goal, category))
		for _, name := range selected {
			exercises = append(exercises, exerciseDetails(name, goal, category))
		}
		weekly = append(weekly, DayPlan{Day: day, Exercises: exercises})
	}

	return Plan{
		UserEmail:   strings.ToLower(strings.TrimSpace(email)),
		BMI:         bmi,
		BMICategory: category,
		Goal:        goal,
		WeeklyPlan:  weekly,
	}
}
