package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSSE(t *testing.T) {
	body := strings.Join([]string{
		": keep-alive",
		"data: {\"n\":1}",
		"",
		"data: line1",
		"data: line2",
		"",
		"data: [DONE]",
		"",
	}, "\n")

	var events []string
	err := streamSSE(strings.NewReader(body), func(data string) error {
		events = append(events, data)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"{\"n\":1}", "line1\nline2", "[DONE]"}, events)
}

func TestStreamSSEFlushesTrailingEventOnEOF(t *testing.T) {
	var events []string
	err := streamSSE(strings.NewReader("data: tail\n"), func(data string) error {
		events = append(events, data)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"tail"}, events)
}
