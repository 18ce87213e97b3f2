package ui

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/detect"
	"axoproject/internal/manifest"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan detect.Event, 8)
	ecos := []manifest.Ecosystem{manifest.EcosystemCargo, manifest.EcosystemNpm}
	m := NewProgressModel("detecting", ecos, events).(*progressModel)

	m.Update(eventMsg{Ecosystem: "cargo", Status: detect.StatusWorking})
	assert.Equal(t, detect.StatusWorking, m.items[0].status)
	assert.InDelta(t, 0.0, m.fraction(), 1e-9)

	m.Update(eventMsg{Ecosystem: "cargo", Status: detect.StatusMissing, Elapsed: 3 * time.Millisecond})
	m.Update(eventMsg{Ecosystem: "unknown", Status: detect.StatusFound})
	assert.InDelta(t, 0.5, m.fraction(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "detecting")
	assert.Contains(t, view, "missing")
	assert.Contains(t, view, "3ms")

	_, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "done: detecting")
}

func TestListenReportsClose(t *testing.T) {
	events := make(chan detect.Event)
	close(events)
	m := NewProgressModel("x", nil, events).(*progressModel)
	assert.IsType(t, doneMsg{}, m.listenForEvent()())
	assert.Empty(t, m.View())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "cargo", truncate("cargo", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghijkl", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, 7, runewidth.StringWidth(truncate("abcdefghijkl", 7)))
	assert.Equal(t, "漢...", truncate("漢字漢字", 6))
}
