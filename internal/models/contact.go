package models

import "strings"

// ContactInfo is the singleton contact record shown in the footer and the
// contact section. Address holds the corporate line, then the factory line.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AddressLines splits Address into its corporate and factory lines.
func (c ContactInfo) AddressLines() (corporate, factory string) {
	lines := strings.Split(strings.ReplaceAll(c.Address, "\r\n", "\n"), "\n")
	corporate = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		factory = strings.TrimSpace(strings.Join(lines[1:], " "))
	}
	return corporate, factory
}

// JoinAddress builds the stored address from its two lines, skipping empty ones.
func JoinAddress(corporate, factory string) string {
	var lines []string
	for _, l := range []string{corporate, factory} {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

// WithDefaults fills empty fields from def.
func (c ContactInfo) WithDefaults(def ContactInfo) ContactInfo {
	if strings.TrimSpace(c.Email) == "" {
		c.Email = def.Email
	}
	if strings.TrimSpace(c.Phone) == "" {
		c.Phone = def.Phone
	}
	if strings.TrimSpace(c.Address) == "" {
		c.Address = def.Address
	}
	return c
}

// ContactMessage is what a visitor sends through the public contact form.
type ContactMessage struct {
	FullName string `json:"full_name" form:"full_name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Message  string `json:"message" form:"message" binding:"required"`
}

// ContactSubmission is a stored contact form message.
type ContactSubmission struct {
	ID             int    `json:"id" validate:"required,gt=0"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	SubmissionDate string `json:"submission_date"`
	ReadStatus     bool   `json:"read_status"`
}

func (s ContactSubmission) Key() int { return s.ID }

// SubmittedOn is the submission date without its time component.
func (s ContactSubmission) SubmittedOn() string { return DatePart(s.SubmissionDate) }
