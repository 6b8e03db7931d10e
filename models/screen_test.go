package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenTransitions(t *testing.T) {
	legal := []struct {
		from, to Screen
	}{
		{ScreenLogin, ScreenQueue},
		{ScreenLogin, ScreenDashboard},
		{ScreenQueue, ScreenReview},
		{ScreenQueue, ScreenLogin},
		{ScreenReview, ScreenQueue},
		{ScreenReview, ScreenReview},
		{ScreenDashboard, ScreenLogin},
	}
	for _, tr := range legal {
		assert.True(t, tr.from.CanTransition(tr.to),
			"%s -> %s should be legal", tr.from, tr.to)
	}

	illegal := []struct {
		from, to Screen
	}{
		{ScreenLogin, ScreenReview},
		{ScreenLogin, ScreenLogin},
		{ScreenQueue, ScreenDashboard},
		{ScreenReview, ScreenDashboard},
		{ScreenReview, ScreenLogin},
		{ScreenDashboard, ScreenQueue},
		{ScreenDashboard, ScreenReview},
	}
	for _, tr := range illegal {
		assert.False(t, tr.from.CanTransition(tr.to),
			"%s -> %s should be illegal", tr.from, tr.to)
	}
}

func TestScreenFromString(t *testing.T) {
	s, err := ScreenFromString("review")
	assert.NoError(t, err)
	assert.Equal(t, ScreenReview, s)

	_, err = ScreenFromString("lobby")
	assert.ErrorIs(t, err, BadParameterError)
}
