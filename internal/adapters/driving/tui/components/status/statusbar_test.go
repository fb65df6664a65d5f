package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_States(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetLabels(4)
	bar.SetWidth(120)

	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "4 labels")
	assert.Contains(t, bar.View(), "enter: send")

	bar.SetState(StateThinking)
	assert.Contains(t, bar.View(), "Thinking...")

	bar.SetError("query must be text")
	assert.Equal(t, StateError, bar.State())
	assert.Equal(t, "query must be text", bar.Message())
	assert.Contains(t, bar.View(), "Error: query must be text")

	bar.Clear()
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 120, bar.Width())
}
