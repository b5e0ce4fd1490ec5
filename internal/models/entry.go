package models

import "time"

const (
	BleedingNone     = "none"
	BleedingSpotting = "spotting"
	BleedingLight    = "light"
	BleedingModerate = "moderate"
	BleedingHeavy    = "heavy"
)

const (
	MinScore = 1
	MaxScore = 10

	DefaultScore     = 1
	DefaultMoodScore = 5
)

const EntryDateLayout = "2006-01-02"

// SymptomEntry is one user's log for one calendar day.
type SymptomEntry struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id,omitempty"`
	UserID        uint      `gorm:"not null;uniqueIndex:uidx_entries_user_date" json:"user_id,omitempty"`
	EntryDate     string    `gorm:"type:text;not null;uniqueIndex:uidx_entries_user_date" json:"entry_date"`
	PainLevel     int       `gorm:"not null;default:1" json:"pain_level"`
	FatigueLevel  int       `gorm:"not null;default:1" json:"fatigue_level"`
	BloatingLevel int       `gorm:"not null;default:1" json:"bloating_level"`
	MoodLevel     int       `gorm:"not null;default:5" json:"mood_level"`
	NauseaLevel   int       `gorm:"not null;default:1" json:"nausea_level"`
	BleedingLevel string    `gorm:"not null;default:none" json:"bleeding_level"`
	Triggers      []string  `gorm:"serializer:json" json:"triggers"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

func (SymptomEntry) TableName() string {
	return "symptom_entries"
}

// BleedingLevels lists the levels from lightest to heaviest.
func BleedingLevels() []string {
	return []string{BleedingNone, BleedingSpotting, BleedingLight, BleedingModerate, BleedingHeavy}
}

func BleedingRank(level string) int {
	for index, candidate := range BleedingLevels() {
		if candidate == level {
			return index
		}
	}
	return -1
}

func DefaultTriggerSuggestions() []string {
	return []string{"Stress", "Poor Sleep", "Certain Foods", "Exercise", "Hormonal", "Unknown"}
}

type SymptomScale struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func DefaultSymptomScales() []SymptomScale {
	return []SymptomScale{
		{ID: "pain_level", Label: "Pelvic Pain", Icon: "⚡", Color: "#e07c7c"},
		{ID: "fatigue_level", Label: "Fatigue", Icon: "🌙", Color: "#9b8ec4"},
		{ID: "bloating_level", Label: "Bloating", Icon: "💧", Color: "#6ba8c4"},
		{ID: "mood_level", Label: "Mood", Icon: "🌤", Color: "#c4a96b"},
		{ID: "nausea_level", Label: "Nausea", Icon: "🌿", Color: "#6bc47a"},
	}
}
