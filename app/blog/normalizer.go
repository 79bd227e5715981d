package blog

import (
	"cmp"
	"fmt"
	"strconv"

	"devfolio/app/devto"
)

// PlaceholderImage is served when an article carries neither a cover
// nor a social image.
const PlaceholderImage = "/images/blog-placeholder.svg"

type Normalizer struct {
	placeholderImage string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		placeholderImage: PlaceholderImage,
	}
}

// Run maps every article through the normalization rule, preserving
// source order.
func (n *Normalizer) Run(articles []devto.Article) []Post {
	posts := make([]Post, 0, len(articles))
	for _, article := range articles {
		posts = append(posts, n.normalize(article))
	}
	return posts
}

// normalize is total over syntactically valid articles: missing optional
// fields degrade to documented fallbacks instead of erroring.
func (n *Normalizer) normalize(article devto.Article) Post {
	tags := make([]string, len(article.TagList))
	copy(tags, article.TagList)

	return Post{
		ID:          strconv.Itoa(article.ID),
		Title:       article.Title,
		Excerpt:     cmp.Or(article.Description, article.Title),
		Image:       cmp.Or(article.CoverImage, article.SocialImage, n.placeholderImage),
		Tags:        tags,
		PublishedAt: article.PublishedAt,
		ReadTime:    fmt.Sprintf("%d min", article.ReadingTimeMinutes),
		Views:       max(article.PageViewsCount, 0),
		Reactions:   max(article.PublicReactionsCount, 0),
		URL:         article.URL,
		Author: Author{
			Name:     article.User.Name,
			Username: article.User.Username,
			Avatar:   article.User.ProfileImage,
		},
	}
}
