package detect

import (
	"strings"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

// Greeting is a recognized greeting category.
type Greeting string

const (
	GreetingGoodMorning   Greeting = "good_morning"
	GreetingGoodAfternoon Greeting = "good_afternoon"
	GreetingGoodEvening   Greeting = "good_evening"
	GreetingHello         Greeting = "hello"
	GreetingGoodNight     Greeting = "good_night"
)

// Order matters: hello is tested before good_night.
var greetingPatterns = []struct {
	pattern  wordPattern
	greeting Greeting
}{
	{mustWordPattern(`good\s*morning|शुभ\s*सकाळ`), GreetingGoodMorning},
	{mustWordPattern(`good\s*afternoon|शुभ\s*दुपार`), GreetingGoodAfternoon},
	{mustWordPattern(`good\s*evening|शुभ\s*संध्याकाळ`), GreetingGoodEvening},
	{mustWordPattern(`hello|hey+|hii+|hi|नमस्ते|नमस्कार|हॅलो|हेलो|हाय`), GreetingHello},
	{mustWordPattern(`good\s*night|शुभ\s*रात्री`), GreetingGoodNight},
}

var greetingNoise = strings.NewReplacer(
	"!", "", ".", "", ",", "",
	"🙂", "", "🙏", "", "✨", "", "⭐", "", "\uFE0F", "",
)

func normalizeGreeting(text string) string {
	return greetingNoise.Replace(strings.ToLower(strings.TrimSpace(text)))
}

// DetectGreeting returns the first greeting category found in text.
func DetectGreeting(text string) (Greeting, bool) {
	t := normalizeGreeting(text)
	for _, g := range greetingPatterns {
		if g.pattern.match(t) {
			return g.greeting, true
		}
	}
	return "", false
}

// YesNo is the outcome of DetectYesNo.
type YesNo string

const (
	Yes     YesNo = "yes"
	No      YesNo = "no"
	Unknown YesNo = "unknown"
)

var (
	yesTokens = []wordPattern{
		mustWordPattern(`yes`), mustWordPattern(`y`), mustWordPattern(`yeah`), mustWordPattern(`yep`),
		mustWordPattern(`होय`), mustWordPattern(`हो`),
	}
	noTokens = []wordPattern{
		mustWordPattern(`no`), mustWordPattern(`n`), mustWordPattern(`nope`),
		mustWordPattern(`नाही`), mustWordPattern(`ना`),
	}
)

// DetectYesNo classifies a reply as yes, no or unknown. Both languages' tokens are
// always checked regardless of lang, and any affirmative token beats any negative one.
func DetectYesNo(text string, _ domain.Language) YesNo {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, p := range yesTokens {
		if p.match(t) {
			return Yes
		}
	}
	for _, p := range noTokens {
		if p.match(t) {
			return No
		}
	}
	return Unknown
}

var statusPhrases = map[domain.Language][]string{
	domain.LanguageEnglish: {
		"would you like to check the status of your ticket",
		"check status",
	},
	domain.LanguageMarathi: {
		"आपण महा आस्था तक्रार निवारण प्रणालीमध्ये नोंदवलेल्या तिकीटची स्थिती तपासू इच्छिता का",
		"तिकीटची स्थिती तपासू इच्छिता का",
		"स्थिती तपासू इच्छिता का",
		"तिकीटची स्थिती",
		"स्थिती तपासा",
	},
}

// IsStatusQuestion reports whether text asks to check a ticket's status.
func IsStatusQuestion(text string, lang domain.Language) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range statusPhrases[lang] {
		if strings.Contains(t, phrase) {
			return true
		}
	}
	return false
}

var registrationKeywords = []string{"register", "ticket", "complaint", "तिकीट", "नोंदवू", "शिकायत"}

// MentionsRegistration reports whether text contains a registration keyword.
func MentionsRegistration(text string) bool {
	return containsAny(strings.ToLower(text), registrationKeywords)
}

var feedbackKeywords = []string{"feedback", "अभिप्राय"}

// MentionsFeedback reports whether text contains a feedback keyword.
func MentionsFeedback(text string) bool {
	return containsAny(strings.ToLower(text), feedbackKeywords)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
