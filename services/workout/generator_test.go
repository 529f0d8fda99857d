package workout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMI(t *testing.T) {
	assert.Equal(t, 22.9, CalculateBMI(70, 175))
	assert.Equal(t, 27.8, CalculateBMI(90, 180))
	assert.Equal(t, 17.3, CalculateBMI(50, 170))
	assert.Equal(t, 0.0, CalculateBMI(70, 0))
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, CategoryUnderweight, BMICategory(18.4))
	assert.Equal(t, CategoryNormal, BMICategory(18.5))
	assert.Equal(t, CategoryNormal, BMICategory(24.9))
	assert.Equal(t, CategoryOverweight, BMICategory(25))
	assert.Equal(t, CategoryOverweight, BMICategory(29.9))
	assert.Equal(t, CategoryObese, BMICategory(30))
}

func TestGeneratePlanShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	plan := GeneratePlan(rng, "  Ana@Example.com ", 70, 175, GoalGetFit)

	assert.Equal(t, "ana@example.com", plan.UserEmail)
	assert.Equal(t, 22.9, plan.BMI)
	assert.Equal(t, CategoryNormal, plan.BMICategory)
	assert.Equal(t, GoalGetFit, plan.Goal)
	assert.Len(t, plan.WeeklyPlan, 7)

	days := map[string]bool{}
	for _, day := range plan.WeeklyPlan {
		days[day.Day] = true
		assert.Len(t, day.Exercises, 8)

		first := day.Exercises[0]
		assert.Equal(t, "Bicep Curl", first.Name)
		assert.Equal(t, "20 reps", first.Reps)

		for _, ex := range day.Exercises {
			assert.NotEmpty(t, ex.Name)
			// Every slot is either rep-based or time-based, never both.
			assert.False(t, ex.Reps != "" && ex.Duration != "")
			assert.True(t, ex.Reps != "" || ex.Duration != "")
		}
	}
	assert.Len(t, days, 7)
}

func TestGeneratePlanUnknownGoalFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	plan := GeneratePlan(rng, "ana@example.com", 70, 175, "Become An Astronaut")
	assert.Equal(t, GoalGetFit, plan.Goal)
	assert.Len(t, plan.WeeklyPlan, 7)
}

func TestExercisePrescriptions(t *testing.T) {
	// Cardio durations depend on goal and category.
	ex := exerciseDetails("Brisk Walking", GoalLoseWeight, CategoryOverweight)
	assert.Equal(t, "15 min", ex.Duration)
	assert.Empty(t, ex.Reps)

	ex = exerciseDetails("Walking", GoalLoseWeight, CategoryObese)
	assert.Equal(t, "10 min", ex.Duration)

	ex = exerciseDetails("HIIT", GoalBodyBuilding, CategoryNormal)
	assert.Equal(t, "10 min", ex.Duration)

	// Strength prescriptions.
	ex = exerciseDetails("Squats", GoalBodyBuilding, CategoryUnderweight)
	assert.Equal(t, "8 reps × 4 sets", ex.Reps)

	ex = exerciseDetails("Squats", GoalGainWeight, CategoryUnderweight)
	assert.Equal(t, "6 reps × 3 sets", ex.Reps)

	ex = exerciseDetails("Chair Exercises", GoalLoseWeight, CategoryObese)
	assert.Equal(t, "8 reps × 3 sets", ex.Reps)

	ex = exerciseDetails("Push-ups", GoalGetFit, CategoryNormal)
	assert.Equal(t, "10 reps × 3 sets", ex.Reps)
}
