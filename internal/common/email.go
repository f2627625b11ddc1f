package common

// EmailSender delivers a single HTML email.
type EmailSender interface {
	Send(to, subject, html string) error
}

// Email is one message captured by InMemoryEmail.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// InMemoryEmail collects sent messages for assertions in tests.
type InMemoryEmail struct {
	Outbox []Email
}

// Send appends the message to the outbox.
func (m *InMemoryEmail) Send(to, subject, html string) error {
	if m == nil {
		return nil
	}
	m.Outbox = append(m.Outbox, Email{To: to, Subject: subject, HTML: html})
	return nil
}

// NopEmailSender discards every message.
type NopEmailSender struct{}

// Send implements EmailSender.
func (NopEmailSender) Send(string, string, string) error { return nil }
