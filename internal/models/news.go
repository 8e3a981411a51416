package models

// News item kinds.
const (
	KindNews  = "news"
	KindEvent = "event"
)

// NewsEvent is an entry of the News & Events section.
type NewsEvent struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Date        string `json:"date"`
	EndDate     string `json:"end_date"`
	Highlighted bool   `json:"highlighted"`
}

func (n NewsEvent) Key() int { return n.ID }

// Day and EndDay strip any time component from the stored dates.
func (n NewsEvent) Day() string    { return DatePart(n.Date) }
func (n NewsEvent) EndDay() string { return DatePart(n.EndDate) }

// IsEvent reports whether the entry is an event rather than news.
func (n NewsEvent) IsEvent() bool { return n.Type == KindEvent }

// NewsEventInput is the multipart payload for news and event writes.
type NewsEventInput struct {
	Title       string `schema:"title"`
	Type        string `schema:"type"`
	Content     string `schema:"content"`
	Date        string `schema:"date"`
	EndDate     string `schema:"end_date,omitempty"`
	Highlighted bool   `schema:"highlighted"`
}
