package domain

// Activity represents an extracurricular activity and its current roster
type Activity struct {
	Name            string   `yaml:"name" json:"-"`
	Description     string   `yaml:"description" json:"description"`
	Schedule        string   `yaml:"schedule" json:"schedule"`
	MaxParticipants int      `yaml:"max_participants" json:"max_participants"`
	Participants    []string `yaml:"participants" json:"participants"`
}

// ActivityConfig represents the seed dataset loaded at startup
type ActivityConfig struct {
	Activities []Activity `yaml:"activities"`
}

// Clone returns a deep copy of the activity. The participant slice is
// never nil so it always encodes as a JSON array.
func (a Activity) Clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}

// HasParticipant reports whether email is on the roster
func (a *Activity) HasParticipant(email string) bool {
	return a.indexOf(email) >= 0
}

// AddParticipant appends email to the roster. It returns false if the
// email is already present.
func (a *Activity) AddParticipant(email string) bool {
	if a.HasParticipant(email) {
		return false
	}
	a.Participants = append(a.Participants, email)
	return true
}

// RemoveParticipant removes email from the roster, keeping the order of
// the remaining participants. It returns false if the email is absent.
func (a *Activity) RemoveParticipant(email string) bool {
	i := a.indexOf(email)
	if i < 0 {
		return false
	}
	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return true
}

func (a *Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// GetActivityByName finds an activity in the seed config by its name
func GetActivityByName(cfg *ActivityConfig, name string) (Activity, bool) {
	if cfg == nil {
		return Activity{}, false
	}
	for _, a := range cfg.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}
