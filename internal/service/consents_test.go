package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wellnest-hq/wellness-api/internal/model"
)

func consentAt(consentType model.ConsentType, status model.ConsentStatus, expiresAt *time.Time) model.ConsentRecord {
	return model.ConsentRecord{
		ConsentType: consentType,
		Status:      status,
		ExpiresAt:   expiresAt,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestConsentActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		consent model.ConsentRecord
		want    bool
	}{
		{
			"granted without expiry",
			consentAt(model.ConsentAssessment, model.ConsentGranted, nil),
			true,
		},
		{
			"granted with future expiry",
			consentAt(model.ConsentAssessment, model.ConsentGranted, timePtr(now.Add(24*time.Hour))),
			true,
		},
		{
			"granted but expired counts as inactive before the sweep",
			consentAt(model.ConsentAssessment, model.ConsentGranted, timePtr(now.Add(-time.Hour))),
			false,
		},
		{
			"pending",
			consentAt(model.ConsentAssessment, model.ConsentPending, nil),
			false,
		},
		{
			"revoked",
			consentAt(model.ConsentAssessment, model.ConsentRevoked, nil),
			false,
		},
		{
			"wrong type",
			consentAt(model.ConsentDataSharing, model.ConsentGranted, nil),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConsentActiveAt(tt.consent, model.ConsentAssessment, now))
		})
	}
}
