package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/emails/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplateWebinarRegistration corresponds to templates/emails/webinar_registration.html
	TemplateWebinarRegistration Template = "webinar_registration"

	// TemplateConsentExpiry corresponds to templates/emails/consent_expiry.html
	TemplateConsentExpiry Template = "consent_expiry"
)
