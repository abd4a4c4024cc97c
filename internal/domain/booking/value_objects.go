package booking

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinNameLength    = 2
	MinPhoneLength   = 10
	MaxMessageLength = 2000
	DateLayout       = "2006-01-02"
	CreatedAtLayout  = time.RFC3339Nano
)

var (
	ErrInvalidName    = errors.New("name must contain at least 2 characters")
	ErrInvalidPhone   = errors.New("phone number must contain at least 10 characters")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrInvalidDate    = errors.New("date must be formatted as YYYY-MM-DD")
	ErrDateInPast     = errors.New("date cannot be in the past")
	ErrMessageTooLong = errors.New("message is too long")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < MinNameLength {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) String() string {
	return n.value
}

type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < MinPhoneLength {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string {
	return p.value
}

// Email is optional; the zero value means "not provided".
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Email{}, nil
	}
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEmpty() bool {
	return e.value == ""
}

// EventDate is a calendar day kept in its ISO form; slots compare on the string.
type EventDate struct {
	value string
}

func ParseEventDate(s string) (EventDate, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return EventDate{}, ErrInvalidDate
	}
	return EventDate{value: s}, nil
}

// NewEventDate additionally rejects days before today.
func NewEventDate(s string, today time.Time) (EventDate, error) {
	d, err := ParseEventDate(s)
	if err != nil {
		return EventDate{}, err
	}
	if d.value < today.Format(DateLayout) {
		return EventDate{}, ErrDateInPast
	}
	return d, nil
}

func (d EventDate) String() string {
	return d.value
}

type Message struct {
	value string
}

func NewMessage(s string) (Message, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxMessageLength {
		return Message{}, ErrMessageTooLong
	}
	return Message{value: s}, nil
}

func (m Message) String() string {
	return m.value
}

func (m Message) IsEmpty() bool {
	return m.value == ""
}
