package domain

// Settings is a user's preference record. Updates replace it wholesale.
type Settings struct {
	DisplayName  string `json:"display_name"`
	ReminderTime string `json:"reminder_time"`
	Theme        string `json:"theme"`
}

// DefaultSettings is what a user sees before saving anything.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:  "Friend",
		ReminderTime: "20:00",
		Theme:        "warm",
	}
}
