package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestPosterFilename(t *testing.T) {
	assert.Equal(t, "The_Dark_Knight.jpg", PosterFilename("The Dark Knight", "upload.jpg"))
	assert.Equal(t, "Dune.png", PosterFilename("Dune", "poster.png"))
	assert.Equal(t, "Ocean_s_Eleven.jpeg", PosterFilename("Ocean's Eleven", "x.jpeg"))
	assert.Equal(t, "Up.png", PosterFilename(` Up `, "a.png"))
}
