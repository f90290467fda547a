package email

// SendWelcomeEmail greets a newly created staff account.
func (c *Client) SendWelcomeEmail(to, displayName string) error {
	data := map[string]string{
		"DisplayName": displayName,
	}

	return c.SendEmail(
		to,
		"Welcome to Wellnest!",
		TemplateWelcome,
		data,
	)
}

// SendWebinarRegistrationEmail confirms a webinar registration.
func (c *Client) SendWebinarRegistrationEmail(to, displayName, webinarTitle, webinarDate string) error {
	data := map[string]string{
		"DisplayName":  displayName,
		"WebinarTitle": webinarTitle,
		"WebinarDate":  webinarDate,
	}

	return c.SendEmail(
		to,
		"You're registered: "+webinarTitle,
		TemplateWebinarRegistration,
		data,
	)
}

// SendConsentExpiryEmail notifies a parent that their child's consent
// record has expired and was revoked, prompting renewal.
func (c *Client) SendConsentExpiryEmail(to, studentName, consentType string) error {
	data := map[string]string{
		"StudentName": studentName,
		"ConsentType": consentType,
	}

	return c.SendEmail(
		to,
		"Consent expired for "+studentName,
		TemplateConsentExpiry,
		data,
	)
}
