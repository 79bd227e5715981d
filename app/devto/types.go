package devto

// Article is the raw article record as returned by the dev.to API.
// Optional fields come back as null or are omitted entirely, both of
// which decode to the Go zero value.
type Article struct {
	ID                   int      `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	URL                  string   `json:"url"`
	PublishedAt          string   `json:"published_at"`
	CoverImage           string   `json:"cover_image"`
	SocialImage          string   `json:"social_image"`
	TagList              []string `json:"tag_list"`
	ReadingTimeMinutes   int      `json:"reading_time_minutes"`
	PublicReactionsCount int      `json:"public_reactions_count"`
	PageViewsCount       int      `json:"page_views_count"`
	BodyHTML             string   `json:"body_html"`
	User                 User     `json:"user"`
}

// User is the article author as embedded in the dev.to article payload.
type User struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}
