package services

import (
	"context"
	"testing"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"low", models.PriorityLow},
		{"Medium", models.PriorityMedium},
		{"High.", models.PriorityHigh},
		{" urgent! ", models.PriorityUrgent},
		{`"Urgent"`, models.PriorityUrgent},
		{"URGENT", models.PriorityUrgent},
	}
	for _, tc := range cases {
		got, err := parsePriority(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestParsePriorityRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "critical priority", "the priority is high because..."} {
		_, err := parsePriority(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestClassifyPriorityDisabledWithoutKey(t *testing.T) {
	svc := NewClassifierService(&config.Config{AIAPIKey: ""})

	_, err := svc.ClassifyPriority(context.Background(), CaseDetails{Subject: "Flooding"})
	assert.ErrorIs(t, err, ErrClassifierDisabled)
}

func TestPriorityForFallsBackToDefault(t *testing.T) {
	svc := NewClassifierService(&config.Config{AIAPIKey: ""})

	priority, err := svc.PriorityFor(context.Background(), CaseDetails{Subject: "Flooding"})
	assert.Error(t, err)
	assert.Equal(t, DefaultPriority, priority)
	assert.Equal(t, models.PriorityMedium, priority)
}

func TestCaseDetailsPrompt(t *testing.T) {
	details := CaseDetails{
		Subject:         "Broken streetlight",
		Description:     "The light on Rizal St has been out for a week",
		Category:        "infrastructure",
		AreaDescription: "Near the covered court",
		Location:        "Rizal St",
	}
	prompt := details.prompt()
	assert.Contains(t, prompt, "Subject: Broken streetlight")
	assert.Contains(t, prompt, "Category: infrastructure")
	assert.Contains(t, prompt, "Location: Rizal St")
}
