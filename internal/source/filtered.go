package source

import (
	"strings"
)

// Filter decides which entries an index shows. Text terms must all appear
// in the entry body (case-sensitive); the level filter, when set, must
// contain the entry's detected level.
type Filter struct {
	detector LevelDetectFunc

	// Level filter: if set, only show entries with these levels
	levelFilter map[LogLevel]bool

	// Text filter: every term must be a substring of the body
	terms []string
}

// NewFilter creates an empty filter. detector may be nil, in which case
// every entry is classified as LevelUnknown.
func NewFilter(detector LevelDetectFunc) *Filter {
	return &Filter{
		detector:    detector,
		levelFilter: make(map[LogLevel]bool),
	}
}

// SetTerms replaces the text terms. Empty terms are dropped.
func (f *Filter) SetTerms(terms []string) {
	f.terms = nil
	for _, term := range terms {
		if term != "" {
			f.terms = append(f.terms, term)
		}
	}
}

// ParseTerms splits filter text on line breaks and '|' into trimmed,
// non-empty terms
func ParseTerms(texts ...string) []string {
	terms := []string{}
	for _, text := range texts {
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == '\n' || r == '\r' || r == '|'
		})
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				terms = append(terms, f)
			}
		}
	}
	return terms
}

// Terms returns the active text terms
func (f *Filter) Terms() []string {
	return f.terms
}

// ClearTerms removes the text terms
func (f *Filter) ClearTerms() {
	f.terms = nil
}

// SetLevelFilter sets which levels to show (empty = show all)
func (f *Filter) SetLevelFilter(levels map[LogLevel]bool) {
	f.levelFilter = make(map[LogLevel]bool, len(levels))
	for level, on := range levels {
		if on {
			f.levelFilter[level] = true
		}
	}
}

// ToggleLevel toggles a level in the filter
func (f *Filter) ToggleLevel(level LogLevel) {
	if f.levelFilter[level] {
		delete(f.levelFilter, level)
	} else {
		f.levelFilter[level] = true
	}
}

// SetLevelAndAbove sets filter to show this level and all higher severity
func (f *Filter) SetLevelAndAbove(level LogLevel) {
	f.levelFilter = make(map[LogLevel]bool)
	for _, l := range Levels {
		if l >= level {
			f.levelFilter[l] = true
		}
	}
}

// ClearLevels removes all level filters
func (f *Filter) ClearLevels() {
	f.levelFilter = make(map[LogLevel]bool)
}

// Clear removes every filter
func (f *Filter) Clear() {
	f.ClearTerms()
	f.ClearLevels()
}

// ActiveLevels returns the active level filters
func (f *Filter) ActiveLevels() map[LogLevel]bool {
	return f.levelFilter
}

// IsFiltered returns true if any filter is active
func (f *Filter) IsFiltered() bool {
	return len(f.levelFilter) > 0 || len(f.terms) > 0
}

// Detect classifies the entry's level with the filter's detector
func (f *Filter) Detect(e Entry) LogLevel {
	if f.detector == nil {
		return LevelUnknown
	}
	return f.detector(e.Level())
}

// Match reports whether e passes every active filter
func (f *Filter) Match(e Entry) bool {
	if len(f.terms) > 0 {
		body := e.Body()
		for _, term := range f.terms {
			if !strings.Contains(body, term) {
				return false
			}
		}
	}

	if len(f.levelFilter) > 0 && !f.levelFilter[f.Detect(e)] {
		return false
	}

	return true
}
