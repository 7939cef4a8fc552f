// Package catalog holds the bilingual reply templates used by the chatbot.
package catalog

import "github.com/spec-kit/aastha-chatbot/internal/domain"

// Messages is the fixed set of reply templates for one language.
type Messages struct {
	Welcome               string
	InitialQuestion       string
	CheckExistingQuestion string
	StatusCheckQuestion   string
	TicketIDPrompt        string
	MobilePrompt          string
	FeedbackQuestion      string
	RatingQuestion        string
	RatingRequest         string
	InvalidRating         string
	RatingThankYou        string
	TicketNotFound        string
	DatabaseError         string
	InvalidTicketID       string
	InvalidIdentifier     string
	OptionYes             string
	OptionNo              string
	RegistrationIntro     string
	RegistrationLink      string
	Closing               string
	HelpText              string
	TrackTicketHelp       string
	EmptyQuery            string
	QueryFailed           string
	UserSearchEmpty       string
	StatusLookupFailed    string
	RatingSaveFailed      string
	InvalidRatingData     string
	EmptyTicketID         string
	EmptyUserIdentifier   string
	NoRatingsToExport     string
}

var messages = map[domain.Language]*Messages{
	domain.LanguageEnglish: {
		Welcome:               "Welcome to Maha Aastha Grievance Redressal System AI-ChatBot.",
		InitialQuestion:       "Would you like to register a Ticket on the Maha Aastha Grievance Redressal System?",
		CheckExistingQuestion: "Has a Ticket already been registered on the Maha Aastha Grievance Redressal System?",
		StatusCheckQuestion:   "Would you like to check the status of the ticket which you have registered on the Maha Aastha Grievance Redressal System?",
		TicketIDPrompt:        "Please enter your Ticket ID (For example: \"TKT-12345678\")",
		MobilePrompt:          "Or enter your registered mobile number (Example: 9876543210)",
		FeedbackQuestion:      "Would you like to provide feedback regarding the resolution of your ticket addressed through the Maha Aastha Grievance Redressal System?",
		RatingQuestion:        "Please rate your experience with the Maha Aastha Grievance Redressal System:",
		RatingRequest:         "Rate from 1 (Poor) to 5 (Excellent)",
		InvalidRating:         "The information you have entered is invalid. Please try again.",
		RatingThankYou:        "Thank you for your feedback. Your rating has been recorded.",
		TicketNotFound:        "Sorry, no ticket found with the provided ID. Please check your Ticket ID and try again.",
		DatabaseError:         "Unable to fetch ticket information at the moment. Please try again later.",
		InvalidTicketID:       "Please provide a valid Ticket ID in the correct format (For example: \"TKT-12345678\")",
		InvalidIdentifier:     "Please provide a valid Ticket ID or 10-digit mobile number.",
		OptionYes:             "YES",
		OptionNo:              "NO",
		RegistrationIntro:     "You can register your Ticket on the Maha Aastha Grievance Redressal System through below link:",
		RegistrationLink:      "#grievance",
		Closing:               "Thank you for using the Maha Aastha Grievance Redressal System.",
		HelpText:              "Please type 'YES' or 'NO' to proceed with your query.",
		TrackTicketHelp:       "You can also track your ticket status at: #view-ticket",
		EmptyQuery:            "Please provide a valid query.",
		QueryFailed:           "An error occurred while processing your query. Please try again later.",
		UserSearchEmpty:       "No tickets found for the provided user information.",
		StatusLookupFailed:    "An error occurred while fetching the ticket status. Please try again later.",
		RatingSaveFailed:      "Failed to save your rating. Please try again.",
		InvalidRatingData:     "Invalid rating data. Rating must be between 1 and 5.",
		EmptyTicketID:         "Ticket ID cannot be empty.",
		EmptyUserIdentifier:   "User identifier cannot be empty.",
		NoRatingsToExport:     "No ratings data available for export.",
	},
	domain.LanguageMarathi: {
		Welcome:               "नमस्कार, महा आस्था तक्रार निवारण प्रणाली एआय-चॅटबॉटमध्ये आपले स्वागत आहे.",
		InitialQuestion:       "महा आस्था तक्रार निवारण प्रणालीमध्ये आपण तिकीट नोंदवू इच्छिता का?",
		CheckExistingQuestion: "महा आस्था तक्रार निवारण प्रणालीमध्ये नोंदविण्यात आलेली तिकीट आहे का?",
		StatusCheckQuestion:   "आपण महा आस्था तक्रार निवारण प्रणालीमध्ये नोंदवलेल्या तिकीटची स्थिती तपासू इच्छिता का?",
		TicketIDPrompt:        "कृपया आपला तिकीट क्रमांक प्रविष्ट करा (उदाहरणार्थ: \"TKT-12345678\")",
		MobilePrompt:          "किंवा आपला नोंदणीकृत मोबाइल नंबर प्रविष्ट करा (उदाहरणार्थ: 9876543210)",
		FeedbackQuestion:      "महा आस्था तक्रार निवारण प्रणालीद्वारे सोडविण्यात आलेल्या आपल्या तिकीटच्या निराकरणाबाबत अभिप्राय द्यायला इच्छिता का?",
		RatingQuestion:        "कृपया महा आस्था तक्रार निवारण प्रणालीच्या अनुभवाला रेटिंग द्या:",
		RatingRequest:         "१ (खराब) ते ५ (उत्कृष्ट) पर्यंत रेटिंग द्या",
		InvalidRating:         "आपण दिलेली माहिती अवैध आहे. कृपया पुन्हा प्रयत्न करा.",
		RatingThankYou:        "आपल्या अभिप्रायाबद्दल धन्यवाद. आपले रेटिंग नोंदवले गेले आहे.",
		TicketNotFound:        "माफ करा, दिलेल्या क्रमांकाशी कोणतीही तिकीट आढळली नाही. कृपया आपला तिकीट क्रमांक तपासा आणि पुन्हा प्रयत्न करा.",
		DatabaseError:         "सध्या तिकीट माहिती मिळवता येत नाही. कृपया नंतर प्रयत्न करा.",
		InvalidTicketID:       "कृपया योग्य तिकीट क्रमांक प्रदान करा (उदाहरणार्थ: \"TKT-12345678\")",
		InvalidIdentifier:     "कृपया योग्य तिकीट क्रमांक किंवा 10-अंकी मोबाइल नंबर प्रदान करा.",
		OptionYes:             "होय",
		OptionNo:              "नाही",
		RegistrationIntro:     "आपण महा आस्था तक्रार निवारण प्रणालीमध्ये आपली तिकीट खालील लिंकद्वारे नोंदवू शकता:",
		RegistrationLink:      "#grievance",
		Closing:               "महा आस्था तक्रार निवारण प्रणालीचा वापर केल्याबद्दल आपले धन्यवाद.",
		HelpText:              "कृपया 'होय' किंवा 'नाही' टाइप करून आपल्या प्रश्नासह पुढे जा.",
		TrackTicketHelp:       "आपण आपल्या तिकीटची स्थिती येथे देखील तपासू शकता: #view-ticket",
		EmptyQuery:            "कृपया एक वैध प्रश्न प्रदान करा.",
		QueryFailed:           "तुमचा प्रश्न प्रक्रिया करतान त्रुटी आली. कृपया नंतर पुन्हा प्रयत्न करा.",
		UserSearchEmpty:       "दिलेल्या वापरकर्ता माहितीसाठी कोणत्याही तिकीटी आढळल्या नाहीत.",
		StatusLookupFailed:    "तिकीट स्थिती मिळवताना त्रुटी आली. कृपया नंतर पुन्हा प्रयत्न करा.",
		RatingSaveFailed:      "आपले रेटिंग जतन करण्यात अयशस्वी. कृपया पुन्हा प्रयत्न करा.",
		InvalidRatingData:     "अवैध रेटिंग डेटा. रेटिंग 1 आणि 5 दरम्यान असावे.",
		EmptyTicketID:         "तिकीट क्रमांक रिकामा असू शकत नाही.",
		EmptyUserIdentifier:   "वापरकर्ता माहिती रिकामी असू शकत नाही.",
		NoRatingsToExport:     "निर्यात करण्यासाठी कोणताही रेटिंग डेटा उपलब्ध नाही.",
	},
}

var ratingLabels = map[domain.Language]map[int]string{
	domain.LanguageEnglish: {1: "Poor", 2: "Fair", 3: "Good", 4: "Very Good", 5: "Excellent"},
	domain.LanguageMarathi: {1: "खराब", 2: "सामान्य", 3: "चांगले", 4: "खूप चांगले", 5: "उत्कृष्ट"},
}

// For returns the templates for lang, falling back to English.
func For(lang domain.Language) *Messages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[domain.LanguageEnglish]
}

// RatingLabel returns the adjective for a 1-5 rating.
func RatingLabel(lang domain.Language, rating int) (string, bool) {
	labels, ok := ratingLabels[lang]
	if !ok {
		labels = ratingLabels[domain.LanguageEnglish]
	}
	label, ok := labels[rating]
	return label, ok
}

var suggestions = map[domain.Language][]string{
	domain.LanguageEnglish: {
		"I want to register a ticket",
		"Would you like to check the status of the ticket which you have registered on the Maha Aastha Grievance Redressal System?",
		"Check status TKT-12345678",
		"Has a Ticket already been registered on the Maha Aastha Grievance Redressal System?",
		"Would you like to provide feedback regarding the resolution of your ticket addressed through the Maha Aastha Grievance Redressal System?",
	},
	domain.LanguageMarathi: {
		"मला तिकीट नोंदवायची आहे",
		"आपण महा आस्था तक्रार निवारण प्रणालीमध्ये नोंदवलेल्या तिकीटची स्थिती तपासू इच्छिता का?",
		"स्थिती तपासा TKT-12345678",
		"महा आस्था तक्रार निवारण प्रणालीमध्ये नोंदविण्यात आलेली तिकीट आहे का?",
		"आपल्या तिकीटच्या निराकरणाबाबत अभिप्राय द्यायला इच्छिता का?",
	},
}

// Suggestions returns canned example queries.
func Suggestions(lang domain.Language) []string {
	if s, ok := suggestions[lang]; ok {
		return s
	}
	return suggestions[domain.LanguageEnglish]
}

// LanguageDetail describes a supported language for clients.
type LanguageDetail struct {
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// LanguageDetails lists display names keyed by language code.
func LanguageDetails() map[domain.Language]LanguageDetail {
	return map[domain.Language]LanguageDetail{
		domain.LanguageEnglish: {Name: "English", NativeName: "English"},
		domain.LanguageMarathi: {Name: "Marathi", NativeName: "मराठी"},
	}
}
