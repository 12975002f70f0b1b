package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"
)

// mockDialer simulates gomail.Dialer
type mockDialer struct {
	shouldFail bool
	sent       []*gomail.Message
}

func (d *mockDialer) DialAndSend(m ...*gomail.Message) error {
	if d.shouldFail {
		return assert.AnError
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSend_Success(t *testing.T) {
	d := &mockDialer{}
	s := &SMTPSender{from: "from@example.com", dialer: d}

	err := s.Send("to@example.com", "Test Subject", "<b>Test Body</b>")
	assert.NoError(t, err)
	if assert.Len(t, d.sent, 1) {
		assert.Equal(t, []string{"from@example.com"}, d.sent[0].GetHeader("From"))
		assert.Equal(t, []string{"to@example.com"}, d.sent[0].GetHeader("To"))
		assert.Equal(t, []string{"Test Subject"}, d.sent[0].GetHeader("Subject"))
	}
}

func TestSend_Failure(t *testing.T) {
	s := &SMTPSender{from: "from@example.com", dialer: &mockDialer{shouldFail: true}}

	err := s.Send("to@example.com", "Test Subject", "<b>Test Body</b>")
	assert.Error(t, err)
}

func TestNewSMTPSender(t *testing.T) {
	s := NewSMTPSender("localhost", 1025, "", "", "from@example.com")
	assert.Equal(t, "from@example.com", s.from)
	assert.NotNil(t, s.dialer)
}
