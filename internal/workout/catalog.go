package workout

import (
	"github.com/forma/server/internal/model"
)

func intp(v int) *int { return &v }

// Catalog holds the read-only workout reference data, seeded once at
// process start and shared across all users.
type Catalog struct {
	workouts []model.Workout
	byID     map[string]model.Workout
}

// NewCatalog seeds the built-in workout catalog.
func NewCatalog() *Catalog {
	workouts := []model.Workout{
		{
			ID:          "1",
			Title:       "Full Body Workout",
			Description: "Complete full body strength training session",
			Duration:    45,
			Difficulty:  model.DifficultyIntermediate,
			Category:    "Strength",
			Tags:        []string{"full-body", "strength"},
			Exercises: []model.Exercise{
				{ID: "e1", Name: "Push-ups", Sets: intp(3), Reps: intp(12), RestTime: intp(60)},
				{ID: "e2", Name: "Squats", Sets: intp(3), Reps: intp(15), RestTime: intp(60)},
				{ID: "e3", Name: "Plank", Duration: intp(60), Sets: intp(3), RestTime: intp(45)},
				{ID: "e4", Name: "Lunges", Sets: intp(3), Reps: intp(12), RestTime: intp(60)},
				{ID: "e5", Name: "Rows", Sets: intp(3), Reps: intp(10), RestTime: intp(60)},
			},
		},
		{
			ID:          "2",
			Title:       "Morning Yoga",
			Description: "Start your day with calm and focus",
			Duration:    20,
			Difficulty:  model.DifficultyBeginner,
			Category:    "Flexibility",
			Tags:        []string{"yoga", "morning"},
			Exercises: []model.Exercise{
				{ID: "e4", Name: "Sun Salutation", Duration: intp(300)},
				{ID: "e5", Name: "Warrior Pose", Duration: intp(120)},
			},
		},
		{
			ID:          "3",
			Title:       "HIIT Cardio",
			Description: "High intensity interval training",
			Duration:    30,
			Difficulty:  model.DifficultyAdvanced,
			Category:    "Cardio",
			Tags:        []string{"hiit", "cardio"},
			Exercises: []model.Exercise{
				{ID: "e6", Name: "Burpees", Sets: intp(4), Reps: intp(10), RestTime: intp(30)},
				{ID: "e7", Name: "Mountain Climbers", Duration: intp(45), Sets: intp(4), RestTime: intp(30)},
			},
		},
	}

	byID := make(map[string]model.Workout, len(workouts))
	for _, w := range workouts {
		byID[w.ID] = w
	}
	return &Catalog{workouts: workouts, byID: byID}
}

// All returns every catalog workout in seed order.
func (c *Catalog) All() []model.Workout {
	out := make([]model.Workout, len(c.workouts))
	copy(out, c.workouts)
	return out
}

// ByID looks up a workout; ok is false for unknown ids.
func (c *Catalog) ByID(id string) (model.Workout, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// IDs returns the catalog workout ids in seed order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.workouts))
	for i, w := range c.workouts {
		ids[i] = w.ID
	}
	return ids
}

// Recommended returns a fixed subset of the catalog. The user is
// deliberately ignored: personalization never shipped, this is its
// placeholder.
func (c *Catalog) Recommended() []model.Workout {
	return []model.Workout{c.workouts[1], c.workouts[2]}
}
