package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"go.uber.org/zap"
)

type TrackerTab string

const (
	TabLog      TrackerTab = "log"
	TabHistory  TrackerTab = "history"
	TabInsights TrackerTab = "insights"
)

var ErrUnknownTab = errors.New("unknown tab")

func TrackerTabs() []TrackerTab {
	return []TrackerTab{TabLog, TabHistory, TabInsights}
}

func ParseTrackerTab(raw string) (TrackerTab, error) {
	value := TrackerTab(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return TabLog, nil
	}
	for _, tab := range TrackerTabs() {
		if tab == value {
			return tab, nil
		}
	}
	return "", ErrUnknownTab
}

// TrackerState is the per-request controller state behind the three views.
type TrackerState struct {
	Tab         TrackerTab
	Draft       models.SymptomEntry
	DraftStored bool
	Entries     []models.SymptomEntry
}

type TabItem struct {
	ID     TrackerTab `json:"id"`
	Label  string     `json:"label"`
	Icon   string     `json:"icon"`
	Active bool       `json:"active"`
}

type TabBarView struct {
	Active TrackerTab `json:"active"`
	Tabs   []TabItem  `json:"tabs"`
}

type SymptomScaleView struct {
	models.SymptomScale
	Min   int `json:"min"`
	Max   int `json:"max"`
	Value int `json:"value"`
}

type OptionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type LogView struct {
	Title              string              `json:"title"`
	EntryDate          string              `json:"entry_date"`
	Stored             bool                `json:"stored"`
	Draft              models.SymptomEntry `json:"draft"`
	Symptoms           []SymptomScaleView  `json:"symptoms"`
	BleedingLevels     []OptionView        `json:"bleeding_levels"`
	TriggerSuggestions []OptionView        `json:"trigger_suggestions"`
}

type HistoryItem struct {
	Entry     models.SymptomEntry `json:"entry"`
	DateLabel string              `json:"date_label"`
	Accent    PainTier            `json:"accent"`
}

type HistoryView struct {
	Title        string        `json:"title"`
	Empty        bool          `json:"empty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Items        []HistoryItem `json:"items"`
}

type InsightsView struct {
	Title      string    `json:"title"`
	Ready      bool      `json:"ready"`
	EntryCount int       `json:"entry_count"`
	Message    string    `json:"message,omitempty"`
	Progress   string    `json:"progress,omitempty"`
	Stats      *Insights `json:"stats,omitempty"`
	RiskLabel  string    `json:"risk_label,omitempty"`
	TopTrigger string    `json:"top_trigger,omitempty"`
	TrendTitle string    `json:"trend_title,omitempty"`
}

const historyDateLayout = "Mon, Jan 2"

var tabIcons = map[TrackerTab]string{
	TabLog:      "📝",
	TabHistory:  "📋",
	TabInsights: "✨",
}

type ViewEntrySource interface {
	TodayDraft(userID uint) (models.SymptomEntry, bool, error)
	ListEntries(userID uint) ([]models.SymptomEntry, error)
}

type ViewService struct {
	entries    ViewEntrySource
	translator Translator
	policy     RiskPolicy
	logger     *zap.Logger
}

func NewViewService(entries ViewEntrySource, translator Translator, policy RiskPolicy, logger *zap.Logger) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		entries:    entries,
		translator: translator,
		policy:     policy,
		logger:     logger,
	}
}

// LoadState fills the state needed by tab. A failed entry read is logged and
// leaves the list empty; a failed draft read is returned.
func (service *ViewService) LoadState(userID uint, tab TrackerTab) (TrackerState, error) {
	state := TrackerState{Tab: tab}

	if tab == TabLog {
		draft, stored, err := service.entries.TodayDraft(userID)
		if err != nil {
			return TrackerState{}, err
		}
		state.Draft = draft
		state.DraftStored = stored
		return state, nil
	}

	entries, err := service.entries.ListEntries(userID)
	if err != nil {
		service.logger.Error("load entries failed", zap.Uint("user_id", userID), zap.Error(err))
		entries = nil
	}
	state.Entries = entries
	return state, nil
}

func (service *ViewService) TabBar(active TrackerTab, language string) TabBarView {
	tabs := make([]TabItem, 0, len(TrackerTabs()))
	for _, tab := range TrackerTabs() {
		tabs = append(tabs, TabItem{
			ID:     tab,
			Label:  service.translator.Translate(language, "tabs."+string(tab)),
			Icon:   tabIcons[tab],
			Active: tab == active,
		})
	}
	return TabBarView{Active: active, Tabs: tabs}
}

func (service *ViewService) BuildLogView(state TrackerState, language string) LogView {
	draft := state.Draft
	scores := map[string]int{
		"pain_level":     draft.PainLevel,
		"fatigue_level":  draft.FatigueLevel,
		"bloating_level": draft.BloatingLevel,
		"mood_level":     draft.MoodLevel,
		"nausea_level":   draft.NauseaLevel,
	}

	symptoms := make([]SymptomScaleView, 0, len(scores))
	for _, scale := range models.DefaultSymptomScales() {
		scale.Label = service.translator.Translate(language, "symptom."+scale.ID)
		symptoms = append(symptoms, SymptomScaleView{
			SymptomScale: scale,
			Min:          models.MinScore,
			Max:          models.MaxScore,
			Value:        scores[scale.ID],
		})
	}

	bleeding := make([]OptionView, 0, len(models.BleedingLevels()))
	for _, level := range models.BleedingLevels() {
		bleeding = append(bleeding, OptionView{
			ID:       level,
			Label:    service.translator.Translate(language, "bleeding."+level),
			Selected: level == draft.BleedingLevel,
		})
	}

	selected := make(map[string]bool, len(draft.Triggers))
	for _, trigger := range draft.Triggers {
		selected[trigger] = true
	}
	triggers := make([]OptionView, 0, len(models.DefaultTriggerSuggestions()))
	for _, trigger := range models.DefaultTriggerSuggestions() {
		triggers = append(triggers, OptionView{ID: trigger, Label: trigger, Selected: selected[trigger]})
	}

	return LogView{
		Title:              service.translator.Translate(language, "log.title"),
		EntryDate:          draft.EntryDate,
		Stored:             state.DraftStored,
		Draft:              draft,
		Symptoms:           symptoms,
		BleedingLevels:     bleeding,
		TriggerSuggestions: triggers,
	}
}

func (service *ViewService) BuildHistoryView(state TrackerState, language string) HistoryView {
	view := HistoryView{
		Title: service.translator.Translate(language, "history.title"),
		Items: make([]HistoryItem, 0, len(state.Entries)),
	}
	if len(state.Entries) == 0 {
		view.Empty = true
		view.EmptyMessage = service.translator.Translate(language, "history.empty")
		return view
	}

	for _, entry := range state.Entries {
		if entry.Triggers == nil {
			entry.Triggers = []string{}
		}
		view.Items = append(view.Items, HistoryItem{
			Entry:     entry,
			DateLabel: historyDateLabel(entry.EntryDate),
			Accent:    PainTierFor(entry.PainLevel, service.policy),
		})
	}
	return view
}

func (service *ViewService) BuildInsightsView(state TrackerState, language string) InsightsView {
	view := InsightsView{
		Title:      service.translator.Translate(language, "insights.title"),
		EntryCount: len(state.Entries),
	}

	stats, err := ComputeInsights(state.Entries, service.policy)
	if err != nil {
		view.Message = service.translator.Translatef(language, "insights.not_enough_data", service.policy.MinEntries)
		view.Progress = service.translator.Plural(language, "insights.entries_so_far", len(state.Entries))
		return view
	}

	view.Ready = true
	view.Stats = &stats
	view.RiskLabel = service.RiskLabel(stats.RiskLevel, language)
	view.TopTrigger = stats.TopTrigger
	if stats.TopTrigger == NoTriggerIdentified {
		view.TopTrigger = service.translator.Translate(language, "insights.none_identified")
	}
	view.TrendTitle = service.translator.Translatef(language, "insights.trend_title", len(stats.Trend))
	return view
}

func (service *ViewService) RiskLabel(level RiskLevel, language string) string {
	return service.translator.Translate(language, "risk."+string(level))
}

func historyDateLabel(entryDate string) string {
	parsed, err := time.Parse(models.EntryDateLayout, entryDate)
	if err != nil {
		return entryDate
	}
	return parsed.Format(historyDateLayout)
}
