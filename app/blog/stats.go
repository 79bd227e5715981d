package blog

import (
	"math"
	"strconv"
	"strings"
)

// ComputeStats derives summary statistics from the current post list.
// Pure over its input, safe to call on every read.
func ComputeStats(posts []Post) Stats {
	return Stats{
		FeaturedPost:    FeaturedPost(posts),
		RegularPosts:    RegularPosts(posts),
		TotalViews:      TotalViews(posts),
		TotalReactions:  TotalReactions(posts),
		AverageReadTime: AverageReadTime(posts),
	}
}

// FeaturedPost is by convention the first post of the list, which the
// upstream API returns newest first.
func FeaturedPost(posts []Post) *Post {
	if len(posts) == 0 {
		return nil
	}
	return &posts[0]
}

// RegularPosts is everything but the featured post.
func RegularPosts(posts []Post) []Post {
	if len(posts) == 0 {
		return nil
	}
	return posts[1:]
}

func TotalViews(posts []Post) int {
	total := 0
	for _, post := range posts {
		total += post.Views
	}
	return total
}

func TotalReactions(posts []Post) int {
	total := 0
	for _, post := range posts {
		total += post.Reactions
	}
	return total
}

// AverageReadTime is the rounded mean of the minute counts parsed back
// out of the formatted read times, 0 for an empty list.
func AverageReadTime(posts []Post) int {
	if len(posts) == 0 {
		return 0
	}

	sum := 0
	for _, post := range posts {
		sum += parseReadTime(post.ReadTime)
	}

	return int(math.Round(float64(sum) / float64(len(posts))))
}

// parseReadTime extracts the leading minute count of a "<N> min" string.
func parseReadTime(readTime string) int {
	fields := strings.Fields(readTime)
	if len(fields) == 0 {
		return 0
	}

	minutes, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}

	return minutes
}
