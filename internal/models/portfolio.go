package models

// Categories is the fixed set a portfolio or job may belong to.
var Categories = []string{
	"Graphic Design",
	"UI/UX Design",
	"Branding",
	"Photography",
	"Illustration",
	"Web Design",
	"Packaging",
	"Motion Graphics",
	"Architecture",
	"Product Design",
}

// ValidCategory reports whether name is one of the fixed portfolio categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Portfolio is a published creative work item. ID and UserID are immutable
// after creation; Likes and Views never go negative.
type Portfolio struct {
	ID          int      `json:"id"`
	UserID      int      `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	IsPublic    bool     `json:"is_public"`
	Featured    bool     `json:"featured"`
	Likes       int      `json:"likes"`
	Views       int      `json:"views"`
}
