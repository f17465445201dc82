package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEntries = "[2023-02-14 13:42:48] local.INFO: log1\n[2023-02-14 13:43:50] local.ERROR: log2\n"

func entryTexts(b *Buffer) []string {
	var texts []string
	for _, e := range b.Entries() {
		texts = append(texts, e.Text())
	}
	return texts
}

func Test_FromContent(t *testing.T) {
	b := FromContent(twoEntries)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, len(twoEntries), b.Size())
	assert.Equal(t, []int{0, 39}, b.Boundaries())

	first, ok := b.Entry(0)
	require.True(t, ok)
	assert.Equal(t, "[2023-02-14 13:42:48]", first.Timestamp())
	assert.Equal(t, "local.INFO", first.Level())
	assert.Equal(t, "log1\n", first.Body())
	assert.Equal(t, "[2023-02-14 13:42:48] local.INFO: ", first.Header())
	assert.Equal(t, 0, first.Position())

	second, ok := b.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "local.ERROR", second.Level())
	assert.Equal(t, "log2\n", second.Body())
	assert.Equal(t, 1, second.Position())
	assert.Equal(t, len(twoEntries), second.End())
}

func Test_Empty(t *testing.T) {
	b := Empty()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Size())
	assert.Empty(t, b.Entries())

	_, ok := b.Entry(0)
	assert.False(t, ok)
}

func Test_Entry_OutOfRange(t *testing.T) {
	b := FromContent(twoEntries)

	_, ok := b.Entry(-1)
	assert.False(t, ok)
	_, ok = b.Entry(2)
	assert.False(t, ok)
}

func Test_Append(t *testing.T) {
	b := FromContent(twoEntries)
	grown := b.Append("[2023-02-14 13:42:48] local.INFO: log3\n")

	require.Equal(t, 3, grown.Len())
	assert.Equal(t, 2, b.Len(), "original buffer must not change")

	for i := 0; i < 2; i++ {
		before, _ := b.Entry(i)
		after, _ := grown.Entry(i)
		assert.Equal(t, before.Text(), after.Text())
		assert.Equal(t, before.Level(), after.Level())
		assert.Equal(t, before.Body(), after.Body())
	}

	third, _ := grown.Entry(2)
	assert.Equal(t, "log3\n", third.Body())
}

func Test_Append_Empty(t *testing.T) {
	b := FromContent(twoEntries)
	assert.Same(t, b, b.Append(""))
}

func Test_Append_MatchesFullParse(t *testing.T) {
	text := "preamble line\n" +
		"[2023-02-14 13:42:48] local.INFO: first\n" +
		"  continuation\r\n" +
		"[2023-02-14 13:42:49] local.WARNING: second\n" +
		"[2023-02-14 13:42:50] no colon\n" +
		"[2023-02-14 13:42:51] "

	full := FromContent(text)
	for k := 0; k <= len(text); k++ {
		appended := FromContent(text[:k]).Append(text[k:])
		assert.Equal(t, full.Boundaries(), appended.Boundaries(), "split at %d", k)
		assert.Equal(t, entryTexts(full), entryTexts(appended), "split at %d", k)
	}
}

func Test_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "Two entries", text: twoEntries},
		{name: "No trailing newline", text: "[2023-02-14 13:42:48] local.INFO: a\n[2023-02-14 13:42:49] local.INFO: b"},
		{name: "Multiline bodies", text: "[2023-02-14 13:42:48] local.ERROR: boom\n#0 trace\n#1 trace\n[2023-02-14 13:42:49] local.INFO: ok\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromContent(tt.text)
			assert.Equal(t, len(b.Boundaries()), b.Len())
			assert.Equal(t, tt.text, strings.Join(entryTexts(b), ""))
		})
	}
}

func Test_Preamble_IsDropped(t *testing.T) {
	text := "PHP Warning: something at boot\n" + twoEntries
	b := FromContent(text)

	require.Equal(t, 2, b.Len())
	assert.Equal(t, twoEntries, strings.Join(entryTexts(b), ""))
	assert.NotContains(t, strings.Join(entryTexts(b), ""), "PHP Warning")
}

func Test_NoBoundaries_NoEntries(t *testing.T) {
	b := FromContent("plain text\nwithout any timestamp\n")

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Entries())
}

func Test_Occurrences(t *testing.T) {
	b := FromContent("[2023-02-14 13:42:48] local.INFO: same\n" +
		"[2023-02-14 13:42:49] local.INFO: other\n" +
		"[2023-02-14 13:42:50] local.INFO: same\n" +
		"[2023-02-14 13:42:51] local.ERROR: same\n")

	first, _ := b.Entry(0)
	second, _ := b.Entry(1)
	fourth, _ := b.Entry(3)

	assert.Equal(t, 2, b.Occurrences(first))
	assert.Equal(t, 1, b.Occurrences(second))
	assert.Equal(t, 1, b.Occurrences(fourth))
}
