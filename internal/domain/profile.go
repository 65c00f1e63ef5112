package domain

// UserProfile is the health profile snapshot supplied by the caller when a
// plan is generated. It is owned by the auth/profile subsystem; this service
// only reads it for classification heuristics and stores a copy inside the
// plan's generation parameters.
//
// Age is a free-text string as entered by the user; unparseable values are
// treated as 30 by the difficulty heuristic.
type UserProfile struct {
	FullName           string   `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Age                string   `bson:"age,omitempty" json:"age,omitempty"`
	Gender             string   `bson:"gender,omitempty" json:"gender,omitempty"`
	HeightCm           string   `bson:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKg           string   `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	BloodGroup         string   `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	DietType           string   `bson:"diet_type,omitempty" json:"diet_type,omitempty"`
	ChronicConditions  []string `bson:"chronic_conditions,omitempty" json:"chronic_conditions,omitempty"`
	HealthGoals        []string `bson:"health_goals,omitempty" json:"health_goals,omitempty"`
	WakeUpTime         string   `bson:"wake_up_time,omitempty" json:"wake_up_time,omitempty"`
	SleepTime          string   `bson:"sleep_time,omitempty" json:"sleep_time,omitempty"`
	WorkStart          string   `bson:"work_start,omitempty" json:"work_start,omitempty"`
	WorkEnd            string   `bson:"work_end,omitempty" json:"work_end,omitempty"`
	BreakfastTime      string   `bson:"breakfast_time,omitempty" json:"breakfast_time,omitempty"`
	LunchTime          string   `bson:"lunch_time,omitempty" json:"lunch_time,omitempty"`
	DinnerTime         string   `bson:"dinner_time,omitempty" json:"dinner_time,omitempty"`
	WorkoutTime        string   `bson:"workout_time,omitempty" json:"workout_time,omitempty"`
	WorkoutType        string   `bson:"workout_type,omitempty" json:"workout_type,omitempty"`
	RoutineFlexibility string   `bson:"routine_flexibility,omitempty" json:"routine_flexibility,omitempty"`
	Smoking            string   `bson:"smoking,omitempty" json:"smoking,omitempty"`
	Drinking           string   `bson:"drinking,omitempty" json:"drinking,omitempty"`
	Allergies          []string `bson:"allergies,omitempty" json:"allergies,omitempty"`
}
