package models

// DefaultPrimaryMuscle is used when an exercise lists no muscles.
const DefaultPrimaryMuscle = "full-body"

// NoEquipment is the sentinel equipment entry meaning nothing is required.
const NoEquipment = "none"

// Exercise is a single catalog entry. Loaded once per run and never mutated.
type Exercise struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	TimeMinutes int      `json:"time_minutes"`
	Equipment   []string `json:"equipment"`
	Muscles     []string `json:"muscles"`
}

// PrimaryMuscle returns the first listed muscle, or "full-body" when none are listed.
func (e Exercise) PrimaryMuscle() string {
	if len(e.Muscles) == 0 {
		return DefaultPrimaryMuscle
	}
	return e.Muscles[0]
}

// NeedsNoEquipment reports whether the equipment list is empty or exactly ["none"].
func (e Exercise) NeedsNoEquipment() bool {
	return len(e.Equipment) == 0 || (len(e.Equipment) == 1 && e.Equipment[0] == NoEquipment)
}

// HasTag reports whether the exercise carries the given tag.
func (e Exercise) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
