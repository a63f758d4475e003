package mocks

import (
	"github.com/kinoteka/cinema-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRenderer struct {
	mock.Mock
}

func (m *MockTicketRenderer) Render(orderReference string, lines []domain.TicketDocumentLine) ([]byte, error) {
	args := m.Called(orderReference, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWithAttachment(recipient, subject, body string, attachment []byte, filename string) error {
	args := m.Called(recipient, subject, body, attachment, filename)
	return args.Error(0)
}
