package mailer

import "sync"

// SentEmail is a captured message, attachment included.
type SentEmail struct {
	Recipient  string
	Subject    string
	Body       string
	Attachment []byte
	Filename   string
}

// RecordingMailer captures messages instead of delivering them. Used by the
// integration suite to assert on ticket delivery.
type RecordingMailer struct {
	mu    sync.Mutex
	sent  []SentEmail
	Error error
}

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

func (m *RecordingMailer) SendWithAttachment(recipient, subject, body string, attachment []byte, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Error != nil {
		return m.Error
	}

	m.sent = append(m.sent, SentEmail{
		Recipient:  recipient,
		Subject:    subject,
		Body:       body,
		Attachment: attachment,
		Filename:   filename,
	})

	return nil
}

func (m *RecordingMailer) GetSentEmails() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)

	return out
}

func (m *RecordingMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
