package email

// PreviewData contains sample template data for local preview/testing.
// It maps templateName -> (templateVariableName -> exampleValue).
var PreviewData = map[string]map[string]string{
	"welcome": {
		"DisplayName": "Asha Rao",
	},
	"webinar_registration": {
		"DisplayName":  "Asha Rao",
		"WebinarTitle": "Supporting Anxious Learners",
		"WebinarDate":  "2026-03-14 15:00 UTC",
	},
	"consent_expiry": {
		"StudentName": "Milo Petersen",
		"ConsentType": "ASSESSMENT",
	},
}
