package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleEntry(t *testing.T, text string) Entry {
	t.Helper()
	b := FromContent(text)
	require.Equal(t, 1, b.Len())
	e, ok := b.Entry(0)
	require.True(t, ok)
	return e
}

func Test_Entry_Fields(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		timestamp string
		level     string
		body      string
		header    string
	}{
		{
			name:      "Well formed",
			text:      "[2023-02-14 13:42:48] local.INFO: Incoming webhook: 7 \n",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "local.INFO",
			body:      "Incoming webhook: 7 \n",
			header:    "[2023-02-14 13:42:48] local.INFO: ",
		},
		{
			name:      "Continuation lines stay in the body",
			text:      "[2023-02-14 13:42:48] local.ERROR: boom\n#0 /app/index.php(12)\n#1 {main}\n",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "local.ERROR",
			body:      "boom\n#0 /app/index.php(12)\n#1 {main}\n",
			header:    "[2023-02-14 13:42:48] local.ERROR: ",
		},
		{
			name:      "No colon after the timestamp",
			text:      "[2023-02-14 13:42:48] no level here\n",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "no level here\n",
			body:      "",
			header:    "[2023-02-14 13:42:48] no level here\n",
		},
		{
			name:      "Timestamp only",
			text:      "[2023-02-14 13:42:48] ",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "",
			body:      "",
			header:    "[2023-02-14 13:42:48] ",
		},
		{
			name:      "Colon without a following space",
			text:      "[2023-02-14 13:42:48] local.INFO:",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "local.INFO",
			body:      "",
			header:    "[2023-02-14 13:42:48] local.INFO:",
		},
		{
			name:      "Empty level",
			text:      "[2023-02-14 13:42:48] : body\n",
			timestamp: "[2023-02-14 13:42:48]",
			level:     "",
			body:      "body\n",
			header:    "[2023-02-14 13:42:48] : ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := singleEntry(t, tt.text)
			assert.Equal(t, tt.timestamp, e.Timestamp())
			assert.Equal(t, tt.level, e.Level())
			assert.Equal(t, tt.body, e.Body())
			assert.Equal(t, tt.header, e.Header())
			assert.Equal(t, tt.text, e.Text())
		})
	}
}

func Test_Entry_Label(t *testing.T) {
	e := singleEntry(t, "[2023-02-14 13:42:48] local.INFO: hi")

	assert.Equal(t, "hi", e.Label(10))
	assert.Equal(t, "hi", e.Label(2))
	assert.Equal(t, "h", e.Label(1))
	assert.Equal(t, "", e.Label(0))
	assert.Equal(t, "", e.Label(-3))
}

func Test_Entry_Label_KeepsRunesWhole(t *testing.T) {
	e := singleEntry(t, "[2023-02-14 13:42:48] local.INFO: héllo")

	assert.Equal(t, "h", e.Label(2))
	assert.Equal(t, "hé", e.Label(3))
}

func Test_Entry_Label_EmptyBody(t *testing.T) {
	e := singleEntry(t, "[2023-02-14 13:42:48] ")
	assert.Equal(t, "", e.Label(30))
}

func Test_Entry_ZeroValue(t *testing.T) {
	var e Entry

	assert.Equal(t, "", e.Text())
	assert.Equal(t, "", e.Timestamp())
	assert.Equal(t, "", e.Level())
	assert.Equal(t, "", e.Body())
	assert.Equal(t, "", e.Label(5))
}

func Test_Entry_SharesBufferText(t *testing.T) {
	b := FromContent(twoEntries)
	e, _ := b.Entry(1)

	assert.Equal(t, b.Text()[e.Start():e.End()], e.Text())
	assert.Equal(t, e.Len(), len(e.Text()))
}
