package email

import (
	"bytes"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	WelcomeTmpl *template.Template
	BookingTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	welcomeTmpl, err := template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return nil, err
	}

	bookingTmpl, err := template.New("bookingConfirmation").Parse(bookingConfirmationTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{
		WelcomeTmpl: welcomeTmpl,
		BookingTmpl: bookingTmpl,
	}, nil
}

// WelcomeData holds the dynamic data for the welcome email.
type WelcomeData struct {
	Name string
}

// BookingData holds the dynamic data for the booking confirmation email.
type BookingData struct {
	Name            string
	StationName     string
	StationAddress  string
	StartTime       string
	DurationMinutes int
}

// GenerateWelcomeEmailHTML executes the welcome template with the provided data.
func (tm *TemplateManager) GenerateWelcomeEmailHTML(data WelcomeData) (string, error) {
	var body bytes.Buffer
	if err := tm.WelcomeTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// GenerateBookingConfirmationHTML executes the booking confirmation template.
func (tm *TemplateManager) GenerateBookingConfirmationHTML(data BookingData) (string, error) {
	var body bytes.Buffer
	if err := tm.BookingTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// --- HTML Template Definitions ---

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Welcome</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome aboard, {{.Name}}!</h2>
	<p>Your account is ready. You can now search for charging stations near you and reserve a charger before you arrive.</p>
	<p>Happy charging!</p>
</body>
</html>
`

const bookingConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Booking Confirmed</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Your charger is reserved, {{.Name}}!</h2>
	<p>We have confirmed your booking at <strong>{{.StationName}}</strong>.</p>
	<p>{{.StationAddress}}</p>
	<p>Start: {{.StartTime}}<br>Duration: {{.DurationMinutes}} minutes</p>
	<p>The charger will be held for you until the booking is cancelled or completed.</p>
</body>
</html>
`
