package entities

import "regexp"

// ContactInfo holds contact channels discovered in resume text. A field is
// empty when its pattern never matched; matched values are kept exactly as
// found, without validation.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	GitHub   string `json:"github,omitempty"`
	VK       string `json:"vk,omitempty"`
	HH       string `json:"hh,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

var (
	emailRe    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`(?:(?:8|\+7)[\- ]?)?(?:\(?\d{3}\)?[\- ]?)?[\d\- ]{7,10}`)
	telegramRe = regexp.MustCompile(`@\w+`)
	githubRe   = regexp.MustCompile(`(https?://)?(www\.)?github\.com/[^\s]+`)
	vkRe       = regexp.MustCompile(`(?i)(https?://)?(www\.)?(vk\.com/[^\s]+|вконтакте|вк|vk@\w+)`)
	hhRe       = regexp.MustCompile(`(https?://)?(www\.)?hh\.ru/[^\s]+`)
	linkedinRe = regexp.MustCompile(`(https?://)?(www\.)?linkedin\.com/[^\s]+`)
)

// ExtractContacts scans resume text for contact channels with independent
// pattern searches. The first match per channel wins. Messaging handles are
// searched with email addresses blanked out so the domain half of an email
// is never mistaken for a handle.
func ExtractContacts(text string) ContactInfo {
	contacts := ContactInfo{
		Email:    emailRe.FindString(text),
		Phone:    phoneRe.FindString(text),
		GitHub:   githubRe.FindString(text),
		VK:       vkRe.FindString(text),
		HH:       hhRe.FindString(text),
		LinkedIn: linkedinRe.FindString(text),
	}

	scrubbed := emailRe.ReplaceAllString(text, " ")
	contacts.Telegram = telegramRe.FindString(scrubbed)

	return contacts
}
