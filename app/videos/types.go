package videos

// Video is the normalized representation of one channel upload.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
