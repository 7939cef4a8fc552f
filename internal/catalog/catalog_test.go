package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/aastha-chatbot/internal/detect"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

func TestForReturnsStableTemplates(t *testing.T) {
	for _, lang := range domain.SupportedLanguages {
		first := For(lang)
		second := For(lang)
		require.NotNil(t, first)
		assert.Equal(t, first.Welcome, second.Welcome)
		assert.NotEmpty(t, first.DatabaseError)
		assert.NotEmpty(t, first.TicketNotFound)
	}
	assert.Equal(t, For(domain.LanguageEnglish), For("fr"))
}

func TestRatingLabel(t *testing.T) {
	label, ok := RatingLabel(domain.LanguageMarathi, 5)
	require.True(t, ok)
	assert.Equal(t, "उत्कृष्ट", label)

	label, ok = RatingLabel(domain.LanguageEnglish, 1)
	require.True(t, ok)
	assert.Equal(t, "Poor", label)

	_, ok = RatingLabel(domain.LanguageEnglish, 6)
	assert.False(t, ok)
}

func TestGreetingReply(t *testing.T) {
	assert.Equal(t, "Good Morning! "+For(domain.LanguageEnglish).Welcome,
		GreetingReply(domain.LanguageEnglish, detect.GreetingGoodMorning))
	assert.Equal(t, For(domain.LanguageMarathi).Welcome,
		GreetingReply(domain.LanguageMarathi, detect.GreetingHello))
	assert.Equal(t, "शुभ रात्री! "+For(domain.LanguageMarathi).Welcome,
		GreetingReply(domain.LanguageMarathi, detect.GreetingGoodNight))
}

func TestMenuContainsBothQuestions(t *testing.T) {
	en := Menu(domain.LanguageEnglish)
	assert.Contains(t, en, "Question 1: "+For(domain.LanguageEnglish).InitialQuestion)
	assert.Contains(t, en, "Question 2: "+For(domain.LanguageEnglish).StatusCheckQuestion)
	assert.Contains(t, en, `Answer 1: "YES"`)

	mr := Menu(domain.LanguageMarathi)
	assert.Contains(t, mr, "प्रश्न क्र. १")
	assert.Contains(t, mr, `उत्तर २ - "नाही"`)
}

func TestRatingScale(t *testing.T) {
	assert.Contains(t, RatingScale(domain.LanguageEnglish), "5 - Excellent")
	assert.Contains(t, RatingScale(domain.LanguageMarathi), "५ - उत्कृष्ट")
}

func TestTicketStatus(t *testing.T) {
	created := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)
	district := "Pune"
	ticket := &domain.TicketRecord{
		Code:          "TKT-ab12cd",
		Status:        domain.TicketStatusResolved,
		EmployeeName:  "A. Patil",
		IssueCategory: "Salary",
		DistrictName:  &district,
		Subject:       "Pending arrears",
		CreatedAt:     &created,
		UpdatedAt:     &updated,
	}

	out := TicketStatus(ticket, domain.LanguageEnglish)
	assert.Contains(t, out, "Ticket ID: TKT-ab12cd")
	assert.Contains(t, out, "Status: Resolved")
	assert.Contains(t, out, "Created: 04-Mar-2025")
	assert.Contains(t, out, "District: Pune")
	assert.Contains(t, out, "Last Updated: 09-Mar-2025")
	assert.NotContains(t, out, "Office:")

	out = TicketStatus(ticket, domain.LanguageMarathi)
	assert.Contains(t, out, "तिकीट क्रमांक: TKT-ab12cd")
	assert.Contains(t, out, "जिल्हा: Pune")

	bare := TicketStatus(&domain.TicketRecord{Code: "TKT-000000", Status: domain.TicketStatusOpen}, domain.LanguageEnglish)
	assert.Contains(t, bare, "Created: Not available")
	assert.Contains(t, bare, "Employee Name: N/A")

	assert.Equal(t, "Ticket not found", TicketStatus(nil, domain.LanguageEnglish))
}

func TestMobileNotFound(t *testing.T) {
	assert.Equal(t, "Sorry, no ticket found for mobile number 9876543210.",
		MobileNotFound(domain.LanguageEnglish, "9876543210", false))
	assert.Contains(t, MobileNotFound(domain.LanguageEnglish, "9876543210", true), "registered mobile number")
	assert.Contains(t, MobileNotFound(domain.LanguageMarathi, "9876543210", false), "9876543210 या मोबाइल नंबरसाठी")
}

func TestValidationMessages(t *testing.T) {
	assert.Equal(t, "Input text too long (max 500 characters).", InputTooLong(domain.LanguageEnglish, 500))
	assert.Contains(t, InputTooLong(domain.LanguageMarathi, 500), "500")
	assert.Equal(t, "Language 'fr' not supported. Use: en, mr", UnsupportedLanguage("fr"))
}
