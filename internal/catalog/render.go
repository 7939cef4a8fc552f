package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/aastha-chatbot/internal/detect"
	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

const dateLayout = "02-Jan-2006"

var greetingPrefix = map[domain.Language]map[detect.Greeting]string{
	domain.LanguageEnglish: {
		detect.GreetingGoodMorning:   "Good Morning! ",
		detect.GreetingGoodAfternoon: "Good Afternoon! ",
		detect.GreetingGoodEvening:   "Good Evening! ",
		detect.GreetingGoodNight:     "Good Night! ",
		detect.GreetingHello:         "Hello! ",
	},
	domain.LanguageMarathi: {
		detect.GreetingGoodMorning:   "शुभ सकाळ! ",
		detect.GreetingGoodAfternoon: "शुभ दुपार! ",
		detect.GreetingGoodEvening:   "शुभ संध्याकाळ! ",
		detect.GreetingGoodNight:     "शुभ रात्री! ",
		// the Marathi welcome already opens with नमस्कार
		detect.GreetingHello: "",
	},
}

// GreetingReply answers a greeting with the matching salutation and the welcome line.
func GreetingReply(lang domain.Language, g detect.Greeting) string {
	prefixes, ok := greetingPrefix[lang]
	if !ok {
		lang, prefixes = domain.LanguageEnglish, greetingPrefix[domain.LanguageEnglish]
	}
	prefix, ok := prefixes[g]
	if !ok {
		prefix = greetingPrefix[domain.LanguageEnglish][detect.GreetingHello]
	}
	return prefix + For(lang).Welcome
}

// Menu is the full initial prompt with both numbered questions.
func Menu(lang domain.Language) string {
	m := For(lang)
	if lang == domain.LanguageMarathi {
		return strings.Join([]string{
			m.Welcome,
			"प्रश्न क्र. १: " + m.InitialQuestion,
			fmt.Sprintf("उत्तर १ - \"%s\"", m.OptionYes),
			fmt.Sprintf("उत्तर २ - \"%s\"", m.OptionNo),
			"प्रश्न क्र. २: " + m.StatusCheckQuestion,
			`उत्तर - "स्थिती तपासा" किंवा आपला तिकीट क्रमांक टाइप करा`,
			"उदाहरण: TKT-12345678",
		}, "\n")
	}
	return strings.Join([]string{
		m.Welcome,
		"Question 1: " + m.InitialQuestion,
		fmt.Sprintf("Answer 1: \"%s\"", m.OptionYes),
		fmt.Sprintf("Answer 2: \"%s\"", m.OptionNo),
		"Question 2: " + m.StatusCheckQuestion,
		`Answer: Type "Check Status" or enter your Ticket ID`,
		"Example: TKT-12345678",
	}, "\n")
}

// FeedbackPrompt asks whether the user wants to leave feedback.
func FeedbackPrompt(lang domain.Language) string {
	m := For(lang)
	if lang == domain.LanguageMarathi {
		return fmt.Sprintf("प्रश्न क्र. २.२: %s\nउत्तर १ - \"%s\"\nउत्तर २ - \"%s\"", m.FeedbackQuestion, m.OptionYes, m.OptionNo)
	}
	return fmt.Sprintf("Question 2.2: %s\nAnswer 1: \"%s\"\nAnswer 2: \"%s\"", m.FeedbackQuestion, m.OptionYes, m.OptionNo)
}

var marathiDigits = []string{"०", "१", "२", "३", "४", "५"}

// RatingScale lists the 1-5 rating options with their labels.
func RatingScale(lang domain.Language) string {
	m := For(lang)
	lines := []string{m.RatingQuestion, m.RatingRequest}
	for r := 1; r <= 5; r++ {
		label, _ := RatingLabel(lang, r)
		num := fmt.Sprint(r)
		if lang == domain.LanguageMarathi {
			num = marathiDigits[r]
		}
		lines = append(lines, num+" - "+label)
	}
	return strings.Join(lines, "\n")
}

// IdentifierPrompt asks for a ticket ID or a registered mobile number.
func IdentifierPrompt(lang domain.Language) string {
	m := For(lang)
	return m.TicketIDPrompt + "\n" + m.MobilePrompt
}

// RegistrationInfo points the user at the registration form.
func RegistrationInfo(lang domain.Language) string {
	m := For(lang)
	return m.RegistrationIntro + "\n\n" + m.RegistrationLink
}

// MobileNotFound reports a miss for a mobile number. The verbose form adds a hint to
// re-check the identifier.
func MobileNotFound(lang domain.Language, mobile string, verbose bool) string {
	if lang == domain.LanguageMarathi {
		msg := fmt.Sprintf("माफ करा, %s या मोबाइल नंबरसाठी कोणतीही तिकीट आढळली नाही.", mobile)
		if verbose {
			msg += " कृपया आपला तिकीट क्रमांक किंवा नोंदणीकृत मोबाइल नंबर तपासा."
		}
		return msg
	}
	msg := fmt.Sprintf("Sorry, no ticket found for mobile number %s.", mobile)
	if verbose {
		msg += " Please check your ticket ID or registered mobile number."
	}
	return msg
}

// MobileSearchNotFound is the direct-lookup variant of MobileNotFound.
func MobileSearchNotFound(lang domain.Language, mobile string) string {
	if lang == domain.LanguageMarathi {
		return fmt.Sprintf("माफ करा, %s या मोबाइल नंबरसाठी कोणतीही तिकीट आढळली नाही. कृपया आपला नोंदणीकृत मोबाइल नंबर तपासा आणि पुन्हा प्रयत्न करा.", mobile)
	}
	return fmt.Sprintf("Sorry, no ticket found for mobile number %s. Please check your registered mobile number and try again.", mobile)
}

// TicketStatus renders a ticket for display.
func TicketStatus(t *domain.TicketRecord, lang domain.Language) string {
	if t == nil {
		if lang == domain.LanguageMarathi {
			return "तिकीट आढळले नाही"
		}
		return "Ticket not found"
	}
	l := statusLabels[domain.LanguageEnglish]
	if lang == domain.LanguageMarathi {
		l = statusLabels[domain.LanguageMarathi]
	}

	created := l.notAvailableDate
	if t.CreatedAt != nil {
		created = t.CreatedAt.Format(dateLayout)
	}

	var b strings.Builder
	b.WriteString(l.header)
	fmt.Fprintf(&b, "\n%s: %s", l.ticketID, t.Code)
	fmt.Fprintf(&b, "\n%s: %s", l.status, t.Status)
	fmt.Fprintf(&b, "\n%s: %s", l.created, created)
	fmt.Fprintf(&b, "\n%s: %s", l.employee, orDefault(t.EmployeeName, l.unspecified))
	fmt.Fprintf(&b, "\n%s: %s", l.category, orDefault(t.IssueCategory, l.unspecified))
	if t.DistrictName != nil && *t.DistrictName != "" {
		fmt.Fprintf(&b, "\n%s: %s", l.district, *t.DistrictName)
	}
	if t.OfficeName != "" {
		fmt.Fprintf(&b, "\n%s: %s", l.office, t.OfficeName)
	}
	if t.Subject != "" {
		fmt.Fprintf(&b, "\n%s: %s", l.subject, t.Subject)
	}
	if t.UpdatedAt != nil {
		fmt.Fprintf(&b, "\n%s: %s", l.updated, t.UpdatedAt.Format(dateLayout))
	}
	return b.String()
}

// MobileMatchNote is appended when a ticket was found through a mobile number.
func MobileMatchNote(lang domain.Language, mobile string) string {
	if lang == domain.LanguageMarathi {
		return "📱 मोबाइल नंबरद्वारे शोधले गेले: " + mobile
	}
	return "📱 Found using mobile number: " + mobile
}

// TrackFooter is appended to every ticket status reply in the chat.
func TrackFooter(lang domain.Language) string {
	return "🔗 " + For(lang).TrackTicketHelp
}

// RatingThanks acknowledges a submitted rating.
func RatingThanks(lang domain.Language, rating int, label string) string {
	if lang == domain.LanguageMarathi {
		return fmt.Sprintf("आपल्या %d-स्टार रेटिंगसाठी धन्यवाद! (%s)", rating, label)
	}
	return fmt.Sprintf("Thank you for your %d-star rating! (%s)", rating, label)
}

// InputTooLong rejects a chat message longer than limit characters.
func InputTooLong(lang domain.Language, limit int) string {
	if lang == domain.LanguageMarathi {
		return fmt.Sprintf("इनपुट मजकूर खूप मोठा आहे (कमाल %d अक्षरे).", limit)
	}
	return fmt.Sprintf("Input text too long (max %d characters).", limit)
}

// UnsupportedLanguage names the accepted language codes. It is always English since
// the requested language is the thing that failed.
func UnsupportedLanguage(requested string) string {
	codes := make([]string, len(domain.SupportedLanguages))
	for i, l := range domain.SupportedLanguages {
		codes[i] = string(l)
	}
	return fmt.Sprintf("Language '%s' not supported. Use: %s", requested, strings.Join(codes, ", "))
}

// FormatDate renders an optional timestamp the way ticket replies do.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

type statusLabelSet struct {
	header, ticketID, status, created, employee, category string
	district, office, subject, updated                    string
	unspecified, notAvailableDate                         string
}

var statusLabels = map[domain.Language]statusLabelSet{
	domain.LanguageEnglish: {
		header:           "The current status of your Ticket is as follows:",
		ticketID:         "Ticket ID",
		status:           "Status",
		created:          "Created",
		employee:         "Employee Name",
		category:         "Category",
		district:         "District",
		office:           "Office",
		subject:          "Subject",
		updated:          "Last Updated",
		unspecified:      "N/A",
		notAvailableDate: "Not available",
	},
	domain.LanguageMarathi: {
		header:           "आपल्या तिकीटची सद्यस्थिती खालीलप्रमाणे आहे:",
		ticketID:         "तिकीट क्रमांक",
		status:           "स्थिती",
		created:          "दाखल दिनांक",
		employee:         "कर्मचारी नाव",
		category:         "श्रेणी",
		district:         "जिल्हा",
		office:           "कार्यालय",
		subject:          "विषय",
		updated:          "शेवटचा अद्यतन",
		unspecified:      "निर्दिष्ट नाही",
		notAvailableDate: "Not available",
	},
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
