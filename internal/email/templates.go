package email

import "fmt"

// ContactSubject returns the subject line for a contact form notification.
func ContactSubject(name string) string {
	return "New Contact Form Submission from " + name
}

// ContactHTML returns the HTML body for a contact form notification.
// Fields are interpolated as given.
func ContactHTML(name, address, message string) string {
	return fmt.Sprintf(`<h3>Message from %s (%s)</h3><p>%s</p>`, name, address, message)
}
