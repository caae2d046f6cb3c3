package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainLabelsCarryTheirColors(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, Teal, s.KpLabel.GetForeground())
	assert.Equal(t, Gold, s.KiLabel.GetForeground())
	assert.Equal(t, Red, s.KdLabel.GetForeground())
}

func TestPanelHasABorder(t *testing.T) {
	s := DefaultStyles()
	rendered := s.Panel.Render("x")
	assert.Greater(t, len(rendered), 1, "the panel should wrap content in a border")
}
