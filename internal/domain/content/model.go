package content

import (
	"errors"
	"strings"
	"time"
)

// DocumentID is the fixed id of the singleton content document. The
// marketing pages have exactly one document; admin edits update it in
// place.
const DocumentID = "site"

// Domain errors
var (
	ErrEmptyHeroTitle = errors.New("hero title cannot be empty")
	ErrBadFAQ         = errors.New("FAQ entries need both a question and an answer")
)

// FAQEntry is one question/answer pair on the public site.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"` // markdown
}

// Document is the singleton marketing-page content. Markdown fields
// are stored raw and rendered at the edge.
type Document struct {
	ID             string     `json:"id"`
	HeroTitle      string     `json:"heroTitle"`
	HeroSubtitle   string     `json:"heroSubtitle"`
	ProgramBlurb   string     `json:"programBlurb"` // markdown
	SessionInfo    string     `json:"sessionInfo"`  // markdown
	MorningTime    string     `json:"morningTime"`
	AfternoonTime  string     `json:"afternoonTime"`
	PriceFullDay   string     `json:"priceFullDay"`
	PriceHalfDay   string     `json:"priceHalfDay"`
	ContactEmail   string     `json:"contactEmail"`
	ContactPhone   string     `json:"contactPhone"`
	FAQ            []FAQEntry `json:"faq"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UpdatedByEmail string     `json:"updatedByEmail"`
}

// Validate checks if the Document has valid data.
// PRE: Document struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Document) Validate() error {
	if strings.TrimSpace(d.HeroTitle) == "" {
		return ErrEmptyHeroTitle
	}
	for _, f := range d.FAQ {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			return ErrBadFAQ
		}
	}
	return nil
}

// Defaults returns the compiled-in content served when the store is
// slow or empty. Reads of the public document fall back to this rather
// than blocking the landing page.
func Defaults() Document {
	return Document{
		ID:           DocumentID,
		HeroTitle:    "Fastbreak Summer Hoops Camp",
		HeroSubtitle: "A week of basketball, friends, and fundamentals for grades K-8.",
		ProgramBlurb: "Mornings focus on **skills stations** (handles, footwork, shooting form).\n" +
			"Afternoons are scrimmage blocks with counselor-coached five-on-five.",
		SessionInfo:   "Each camp day runs as two sessions. Sign up for either or both.",
		MorningTime:   "9:00 AM - 12:00 PM",
		AfternoonTime: "1:00 PM - 4:00 PM",
		PriceFullDay:  "$65/day",
		PriceHalfDay:  "$40/day",
		ContactEmail:  "hello@fastbreakcamp.example",
		ContactPhone:  "5550134444",
		FAQ: []FAQEntry{
			{Question: "What should my camper bring?", Answer: "Sneakers, a water bottle, and a snack. Balls are provided."},
			{Question: "Are sessions grouped by age?", Answer: "Yes. Pods are grouped K-2, 3-5, and 6-8 where numbers allow."},
		},
	}
}
