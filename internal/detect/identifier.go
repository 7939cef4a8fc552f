// Package detect recognizes ticket identifiers, mobile numbers and simple intents in
// free-text English and Marathi messages. Everything here is pure and safe for
// concurrent use.
package detect

import (
	"regexp"
	"strings"
)

// IdentifierKind tags what an Identifier holds.
type IdentifierKind string

const (
	KindTicketID     IdentifierKind = "ticket_id"
	KindMobileNumber IdentifierKind = "mobile_number"
)

// Identifier is either a ticket code or a 10-digit mobile number found in text.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// IsMobile reports whether the identifier is a mobile number.
func (id Identifier) IsMobile() bool { return id.Kind == KindMobileNumber }

var ticketCandidates = []wordPattern{
	mustWordPattern(`(?i)(TKT-[a-z0-9]+)`),
	mustWordPattern(`(?i)(TKT[a-z0-9]+)`),
	mustWordPattern(`([0-9]{6,})`),
}

var validTicketID = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^TKT-[a-z0-9]{6,}$`),
	regexp.MustCompile(`(?i)^TKT[a-z0-9]{6,}$`),
	regexp.MustCompile(`^[0-9]{6,}$`),
}

var mobileCandidates = []digitBounded{
	{re: regexp.MustCompile(`(?:\+91\s?)?([6-9][0-9]{9})`)},
	{re: regexp.MustCompile(`([6-9][0-9]{9})`)},
	{re: regexp.MustCompile(`0([6-9][0-9]{9})`)},
}

// DetectTicketID returns the first ticket-like token in text. The first pattern that
// matches decides; the candidate still has to pass ValidateTicketID.
func DetectTicketID(text string) (string, bool) {
	for _, p := range ticketCandidates {
		if m, ok := p.find(text); ok {
			return m, true
		}
	}
	return "", false
}

// ValidateTicketID reports whether id has the shape of a Maha Aastha ticket code.
func ValidateTicketID(id string) bool {
	id = strings.TrimSpace(id)
	for _, re := range validTicketID {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

func stripToDialable(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '+':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
			return r
		}
		return -1
	}, text)
}

// DetectMobileNumber finds an Indian mobile number in text and returns its bare
// 10-digit form.
func DetectMobileNumber(text string) (string, bool) {
	clean := stripToDialable(text)
	for _, p := range mobileCandidates {
		if m, ok := p.find(clean); ok {
			return m, true
		}
	}
	return "", false
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func mobileLead(b byte) bool { return b >= '6' && b <= '9' }

// ValidateMobileNumber accepts 10 digits starting 6-9, or the same number prefixed
// with 91 or 0. Non-digits are ignored.
func ValidateMobileNumber(s string) bool {
	d := digitsOnly(s)
	switch len(d) {
	case 10:
		return mobileLead(d[0])
	case 11:
		return d[0] == '0' && mobileLead(d[1])
	case 12:
		return strings.HasPrefix(d, "91") && mobileLead(d[2])
	}
	return false
}

// NormalizeMobileNumber strips a leading 0 or 91 from a valid mobile number.
func NormalizeMobileNumber(s string) string {
	d := digitsOnly(s)
	switch len(d) {
	case 11:
		return d[1:]
	case 12:
		return d[2:]
	}
	return d
}

func isAllDigits(s string) bool {
	return s != "" && digitsOnly(s) == s
}

// Detect looks for a ticket ID first and falls back to a mobile number. A bare digit
// run that is also a well-formed mobile number is reported as a mobile number.
func Detect(text string) (Identifier, bool) {
	if id, ok := DetectTicketID(text); ok && ValidateTicketID(id) {
		if isAllDigits(id) && ValidateMobileNumber(id) {
			return Identifier{Kind: KindMobileNumber, Value: NormalizeMobileNumber(id)}, true
		}
		return Identifier{Kind: KindTicketID, Value: id}, true
	}
	if m, ok := DetectMobileNumber(text); ok && ValidateMobileNumber(m) {
		return Identifier{Kind: KindMobileNumber, Value: m}, true
	}
	return Identifier{}, false
}
