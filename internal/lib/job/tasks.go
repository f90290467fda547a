package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis. Asynq routes tasks to handlers by
// these strings.
const (
	TaskWelcomeEmail             = "email:welcome"
	TaskWebinarRegistrationEmail = "email:webinar_registration"
	TaskConsentExpiryEmail       = "email:consent_expiry"
)

// WelcomeEmailPayload is the JSON payload for the welcome email task.
type WelcomeEmailPayload struct {
	To          string `json:"to"`
	DisplayName string `json:"display_name"`
}

// NewWelcomeEmailTask constructs a task for sending a welcome email to a
// newly created user.
func NewWelcomeEmailTask(to, displayName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:          to,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcomeEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// WebinarRegistrationEmailPayload is the JSON payload for the webinar
// registration confirmation task.
type WebinarRegistrationEmailPayload struct {
	To           string `json:"to"`
	DisplayName  string `json:"display_name"`
	WebinarTitle string `json:"webinar_title"`
	WebinarDate  string `json:"webinar_date"`
}

// NewWebinarRegistrationEmailTask constructs a task confirming a webinar
// registration. Registration confirmations are time-sensitive so they go
// into the critical queue.
func NewWebinarRegistrationEmailTask(to, displayName, webinarTitle, webinarDate string) (*asynq.Task, error) {
	payload, err := json.Marshal(WebinarRegistrationEmailPayload{
		To:           to,
		DisplayName:  displayName,
		WebinarTitle: webinarTitle,
		WebinarDate:  webinarDate,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWebinarRegistrationEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

// ConsentExpiryEmailPayload is the JSON payload for the consent expiry
// notification task.
type ConsentExpiryEmailPayload struct {
	To          string `json:"to"`
	StudentName string `json:"student_name"`
	ConsentType string `json:"consent_type"`
}

// NewConsentExpiryEmailTask constructs a task notifying a guardian that a
// consent record has expired and needs renewal.
func NewConsentExpiryEmailTask(to, studentName, consentType string) (*asynq.Task, error) {
	payload, err := json.Marshal(ConsentExpiryEmailPayload{
		To:          to,
		StudentName: studentName,
		ConsentType: consentType,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskConsentExpiryEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
