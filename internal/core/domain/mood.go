package domain

import "strings"

// Descriptor field bounds and defaults. Numeric targets are clamped to these
// closed intervals on construction.
const (
	MinTarget    = 0.0
	MaxTarget    = 1.0
	MinTempo     = 60.0
	MaxTempo     = 180.0
	MaxGenres    = 5
	MaxKeywords  = 5
	MinPromptLen = 2
	MaxPromptLen = 500
)

const (
	defaultMood        = "calm"
	defaultTarget      = 0.5
	defaultTempo       = 100.0
	defaultName        = "나만의 플레이리스트"
	defaultDescription = "당신을 위한 특별한 플레이리스트"
)

var defaultGenres = []string{"pop", "indie"}

// MoodDescriptor is the structured musical intent derived from free text.
// Instances produced by NormalizeDescriptor always satisfy the documented
// invariants: numeric fields in range, genres allow-listed and capped,
// mood/playlist_name/description never empty.
type MoodDescriptor struct {
	Mood               string   `json:"mood"`
	Genres             []string `json:"genres"`
	TargetEnergy       float64  `json:"target_energy"`
	TargetValence      float64  `json:"target_valence"`
	TargetTempo        float64  `json:"target_tempo"`
	TargetDanceability float64  `json:"target_danceability"`
	Keywords           []string `json:"keywords"`
	PlaylistName       string   `json:"playlist_name"`
	Description        string   `json:"description"`
}

// NormalizeDescriptor turns an arbitrary parsed JSON object into a fully
// populated MoodDescriptor. It is total: it never fails, substituting
// defaults for missing, mistyped or out-of-range fields.
func NormalizeDescriptor(raw map[string]any) MoodDescriptor {
	d := MoodDescriptor{
		Mood:               stringOr(raw["mood"], defaultMood),
		Genres:             filterGenres(stringSlice(raw["genres"])),
		TargetEnergy:       clampOr(raw["target_energy"], MinTarget, MaxTarget, defaultTarget),
		TargetValence:      clampOr(raw["target_valence"], MinTarget, MaxTarget, defaultTarget),
		TargetTempo:        clampOr(raw["target_tempo"], MinTempo, MaxTempo, defaultTempo),
		TargetDanceability: clampOr(raw["target_danceability"], MinTarget, MaxTarget, defaultTarget),
		Keywords:           stringSlice(raw["keywords"]),
		PlaylistName:       stringOr(raw["playlist_name"], defaultName),
		Description:        stringOr(raw["description"], defaultDescription),
	}
	if d.Keywords == nil {
		d.Keywords = []string{}
	}
	return d
}

// Normalized re-applies the construction invariants to a descriptor that
// arrived over the wire already shaped, clamping ranges and re-filtering
// genres without touching well-formed fields.
func (d MoodDescriptor) Normalized() MoodDescriptor {
	out := d
	out.Mood = stringOr(d.Mood, defaultMood)
	out.Genres = filterGenres(d.Genres)
	out.TargetEnergy = clamp(d.TargetEnergy, MinTarget, MaxTarget)
	out.TargetValence = clamp(d.TargetValence, MinTarget, MaxTarget)
	out.TargetTempo = clamp(d.TargetTempo, MinTempo, MaxTempo)
	out.TargetDanceability = clamp(d.TargetDanceability, MinTarget, MaxTarget)
	out.PlaylistName = stringOr(d.PlaylistName, defaultName)
	out.Description = stringOr(d.Description, defaultDescription)
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return out
}

// ValidatePrompt checks free-form analyzer input: 2-500 characters after
// trimming.
func ValidatePrompt(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if len([]rune(trimmed)) < MinPromptLen {
		return &ValidationError{Field: "prompt", Reason: "must be at least 2 characters"}
	}
	if len([]rune(trimmed)) > MaxPromptLen {
		return &ValidationError{Field: "prompt", Reason: "must be at most 500 characters"}
	}
	return nil
}

func filterGenres(in []string) []string {
	kept := make([]string, 0, MaxGenres)
	for _, g := range in {
		if !IsSeedGenre(g) {
			continue
		}
		kept = append(kept, strings.ToLower(strings.TrimSpace(g)))
		if len(kept) == MaxGenres {
			break
		}
	}
	if len(kept) == 0 {
		return append([]string(nil), defaultGenres...)
	}
	return kept
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampOr(v any, min, max, def float64) float64 {
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return clamp(f, min, max)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
