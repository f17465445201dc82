package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func suffixDetector(level string) LogLevel {
	switch {
	case strings.HasSuffix(level, ".ERROR"):
		return LevelError
	case strings.HasSuffix(level, ".WARNING"):
		return LevelWarn
	case strings.HasSuffix(level, ".INFO"):
		return LevelInfo
	default:
		return LevelUnknown
	}
}

func Test_Filter_Match(t *testing.T) {
	b := FromContent("[2023-02-14 13:42:48] local.INFO: user 7 logged in\n" +
		"[2023-02-14 13:42:49] local.ERROR: user 7 failed payment\n" +
		"[2023-02-14 13:42:50] local.WARNING: disk almost full\n")
	entries := b.Entries()

	tests := []struct {
		name     string
		setup    func(f *Filter)
		expected []bool
	}{
		{
			name:     "No filter",
			setup:    func(f *Filter) {},
			expected: []bool{true, true, true},
		},
		{
			name:     "Single term",
			setup:    func(f *Filter) { f.SetTerms([]string{"user 7"}) },
			expected: []bool{true, true, false},
		},
		{
			name:     "Every term must match",
			setup:    func(f *Filter) { f.SetTerms([]string{"user", "payment"}) },
			expected: []bool{false, true, false},
		},
		{
			name:     "Case sensitive",
			setup:    func(f *Filter) { f.SetTerms([]string{"USER"}) },
			expected: []bool{false, false, false},
		},
		{
			name:     "Terms only look at the body",
			setup:    func(f *Filter) { f.SetTerms([]string{"local.INFO"}) },
			expected: []bool{false, false, false},
		},
		{
			name:     "Empty terms are ignored",
			setup:    func(f *Filter) { f.SetTerms([]string{"", "disk", ""}) },
			expected: []bool{false, false, true},
		},
		{
			name:     "Level filter",
			setup:    func(f *Filter) { f.ToggleLevel(LevelError) },
			expected: []bool{false, true, false},
		},
		{
			name:     "Level and above",
			setup:    func(f *Filter) { f.SetLevelAndAbove(LevelWarn) },
			expected: []bool{false, true, true},
		},
		{
			name: "Terms and levels combine",
			setup: func(f *Filter) {
				f.SetLevelAndAbove(LevelInfo)
				f.SetTerms([]string{"user"})
				f.ToggleLevel(LevelInfo)
			},
			expected: []bool{false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(suffixDetector)
			tt.setup(f)
			for i, e := range entries {
				assert.Equal(t, tt.expected[i], f.Match(e), "entry %d", i)
			}
		})
	}
}

func Test_Filter_State(t *testing.T) {
	f := NewFilter(nil)
	assert.False(t, f.IsFiltered())

	f.SetTerms([]string{"a", ""})
	assert.True(t, f.IsFiltered())
	assert.Equal(t, []string{"a"}, f.Terms())

	f.ToggleLevel(LevelInfo)
	f.ToggleLevel(LevelInfo)
	assert.Empty(t, f.ActiveLevels())

	f.SetLevelFilter(map[LogLevel]bool{LevelWarn: true, LevelInfo: false})
	assert.Equal(t, map[LogLevel]bool{LevelWarn: true}, f.ActiveLevels())

	f.Clear()
	assert.False(t, f.IsFiltered())
}

func Test_Filter_NilDetector(t *testing.T) {
	e := singleEntry(t, "[2023-02-14 13:42:48] local.ERROR: x\n")
	f := NewFilter(nil)

	assert.Equal(t, LevelUnknown, f.Detect(e))

	f.ToggleLevel(LevelUnknown)
	assert.True(t, f.Match(e))
}

func Test_LogLevel_String(t *testing.T) {
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "unknown", LogLevel(42).String())

	level, ok := ParseLevel(" WARN ")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, level)

	level, ok = ParseLevel("Warning")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, level)

	_, ok = ParseLevel("verbose")
	assert.False(t, ok)
}

func Test_ParseTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "Empty", input: "", want: []string{}},
		{name: "Single term", input: "timeout", want: []string{"timeout"}},
		{name: "Pipe separated", input: "user | login", want: []string{"user", "login"}},
		{name: "Line separated", input: "user\r\nlogin\n", want: []string{"user", "login"}},
		{name: "Blank terms dropped", input: "| a ||  |b", want: []string{"a", "b"}},
		{name: "Inner spaces kept", input: "failed job", want: []string{"failed job"}},
		{name: "Leading space trimmed", input: " foo", want: []string{"foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTerms(tt.input))
		})
	}
}

func Test_ParseTerms_Several(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ParseTerms("alpha|beta", " gamma "))
	assert.Equal(t, []string{}, ParseTerms())
}
