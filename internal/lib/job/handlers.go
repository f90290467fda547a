package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/wellnest-hq/wellness-api/internal/config"
	"github.com/wellnest-hq/wellness-api/internal/lib/email"
)

// emailClient is shared by all job handlers. InitHandlers must run
// before the worker server starts.
var emailClient *email.Client

// InitHandlers initializes dependencies required by job handlers.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(config, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := emailClient.SendWelcomeEmail(p.To, p.DisplayName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	return nil
}

func (j *JobService) handleWebinarRegistrationEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WebinarRegistrationEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal webinar registration email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "webinar_registration").
		Str("to", p.To).
		Str("webinar", p.WebinarTitle).
		Msg("Processing webinar registration email task")

	if err := emailClient.SendWebinarRegistrationEmail(p.To, p.DisplayName, p.WebinarTitle, p.WebinarDate); err != nil {
		j.logger.Error().
			Str("type", "webinar_registration").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send webinar registration email")
		return err
	}

	return nil
}

func (j *JobService) handleConsentExpiryEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ConsentExpiryEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal consent expiry email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "consent_expiry").
		Str("to", p.To).
		Str("consent_type", p.ConsentType).
		Msg("Processing consent expiry email task")

	if err := emailClient.SendConsentExpiryEmail(p.To, p.StudentName, p.ConsentType); err != nil {
		j.logger.Error().
			Str("type", "consent_expiry").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send consent expiry email")
		return err
	}

	return nil
}
