package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContainsID(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	ids := []primitive.ObjectID{a, b}

	assert.True(t, containsID(ids, a))
	assert.True(t, containsID(ids, b))
	assert.False(t, containsID(ids, c))
	assert.False(t, containsID(nil, a))
}

func TestRemoveID(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	ids := []primitive.ObjectID{a, b, c}

	assert.Equal(t, []primitive.ObjectID{a, c}, removeID(ids, b))
	// Original slice untouched
	assert.Equal(t, []primitive.ObjectID{a, b, c}, ids)
	// Removing an absent id is a copy
	assert.Equal(t, []primitive.ObjectID{a, b, c}, removeID(ids, primitive.NewObjectID()))
	assert.Empty(t, removeID(nil, a))
}

func TestLikeToggleRoundTrip(t *testing.T) {
	// Toggling twice returns the like set to its original state: the branch
	// is chosen by membership, so like then unlike composes to identity.
	liker := primitive.NewObjectID()
	original := []primitive.ObjectID{primitive.NewObjectID()}

	liked := append(original, liker)
	assert.True(t, containsID(liked, liker))

	unliked := removeID(liked, liker)
	assert.Equal(t, original, unliked)
}
