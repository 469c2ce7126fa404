package content

import "time"

// Collection names, namespaced per app by the store configuration. Call
// sites go through these constants (or the typed wrappers in accessor.go)
// so a collection path cannot be typoed.
const (
	CollectionPortfolioItems = "portfolio_items"
	CollectionSections       = "sections"
	CollectionStats          = "stats"
	CollectionSkills         = "skills"
	CollectionServices       = "services"
	CollectionServiceList    = "service_list"
	CollectionReviews        = "reviews"
	CollectionFAQs           = "faqs"

	// SiteSettings is a single well-known document, not a collection.
	SettingsCollection = "site_settings"
	SettingsDocumentID = "config"
)

// PortfolioItem is one showcased video. SectionID must reference an
// existing Section at save time; the reference is not enforced by the
// store, so deleting a Section leaves orphaned items (known gap).
type PortfolioItem struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	VideoURL     string    `json:"videoUrl" bson:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	Tools        string    `json:"tools,omitempty" bson:"tools,omitempty"` // comma-separated free text
	Duration     string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Client       string    `json:"client,omitempty" bson:"client,omitempty"`
	SectionID    string    `json:"sectionId" bson:"sectionId"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Section is a user-defined category grouping portfolio items.
type Section struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// Stat is a landing-page counter ("100+ Projects Completed").
type Stat struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty"`
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
	Icon  string `json:"icon,omitempty" bson:"icon,omitempty"`
}

// Skill is a tool proficiency with a 0-100 level.
type Skill struct {
	ID    string  `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string  `json:"name" bson:"name"`
	Level float64 `json:"level" bson:"level"`
}

// ServiceEntry is one offered service card.
type ServiceEntry struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon,omitempty" bson:"icon,omitempty"`
}

// ServiceListItem is a bullet line in the services summary.
type ServiceListItem struct {
	ID   string `json:"id,omitempty" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}

// Review is client feedback. The reviews collection is the only one the
// public may write to; reviews are visible immediately on write.
type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Review    string    `json:"review" bson:"review"`
	Rating    float64   `json:"rating" bson:"rating"` // 1-5
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty"`
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}
