package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUserSlug(t *testing.T) {
	// Username имеет приоритет
	assert.Equal(t, "john-doe", makeUserSlug("John Doe", "Ignored Name"))
	// Без username используется имя
	assert.Equal(t, "jane-doe", makeUserSlug("", "Jane Doe"))
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "gaming-laptops", makeSlug("Gaming Laptops"))
	assert.Equal(t, "cafe-au-lait", makeSlug("Café au Lait"))
}
