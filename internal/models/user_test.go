package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatar(t *testing.T) {
	u := &User{Email: "alice@example.com"}
	url := u.Gravatar(100)
	assert.Equal(t, "https://www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060?s=100", url)

	// Case and surrounding whitespace do not change the hash.
	u2 := &User{Email: "  Alice@Example.COM "}
	assert.Equal(t, url, u2.Gravatar(100))
}
