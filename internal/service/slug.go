package service

import "github.com/gosimple/slug"

// makeUserSlug derives the URL-safe identifier for an account. The username
// wins when present, the display name is the fallback.
func makeUserSlug(username, name string) string {
	if username != "" {
		return slug.Make(username)
	}
	return slug.Make(name)
}

// makeSlug derives a slug from a single title.
func makeSlug(title string) string {
	return slug.Make(title)
}
