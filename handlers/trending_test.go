package handlers

import (
	"testing"

	"pulse/models"

	"github.com/stretchr/testify/assert"
)

func postWithTags(tags ...string) models.Post {
	return models.Post{Hashtags: tags}
}

func TestTopHashtagsCountsAndSorts(t *testing.T) {
	posts := []models.Post{
		postWithTags("go", "news"),
		postWithTags("go"),
		postWithTags("music"),
		postWithTags("go", "music"),
	}

	topics := topHashtags(posts, 5)

	assert.Equal(t, []TrendingTopic{
		{Tag: "go", Posts: 3},
		{Tag: "music", Posts: 2},
		{Tag: "news", Posts: 1},
	}, topics)
}

func TestTopHashtagsDuplicatesInOnePostInflateCount(t *testing.T) {
	// A post that stored "go" twice counts twice; out-of-window posts are
	// already excluded before ranking.
	posts := []models.Post{
		postWithTags("go", "go"),
		postWithTags("go"),
	}

	topics := topHashtags(posts, 5)

	assert.Equal(t, []TrendingTopic{{Tag: "go", Posts: 3}}, topics)
}

func TestTopHashtagsTiesKeepFirstAppearance(t *testing.T) {
	posts := []models.Post{
		postWithTags("alpha"),
		postWithTags("beta"),
		postWithTags("gamma", "beta"),
	}

	topics := topHashtags(posts, 5)

	assert.Equal(t, "beta", topics[0].Tag)
	assert.Equal(t, []TrendingTopic{
		{Tag: "beta", Posts: 2},
		{Tag: "alpha", Posts: 1},
		{Tag: "gamma", Posts: 1},
	}, topics)
}

func TestTopHashtagsTruncatesToLimit(t *testing.T) {
	posts := []models.Post{
		postWithTags("a", "b", "c", "d", "e", "f", "g"),
	}

	topics := topHashtags(posts, 5)
	assert.Len(t, topics, 5)
}

func TestTopHashtagsEmptyWindow(t *testing.T) {
	assert.Empty(t, topHashtags(nil, 5))
	assert.Empty(t, topHashtags([]models.Post{}, 5))
}
