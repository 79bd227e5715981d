package blog

// Post is the stable, normalized post representation exposed to
// consumers. Every Post is derived from exactly one dev.to article and
// never references producer-owned state.
type Post struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	ReadTime    string   `json:"readTime"`
	Views       int      `json:"views"`
	Reactions   int      `json:"reactions"`
	URL         string   `json:"url"`
	Author      Author   `json:"author"`
}

// Author is a denormalized copy of the post author, not a reference.
type Author struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Stats are summary statistics derived from a post list. They are always
// recomputed from the current list, never stored independently.
type Stats struct {
	FeaturedPost    *Post
	RegularPosts    []Post
	TotalViews      int
	TotalReactions  int
	AverageReadTime int
}
