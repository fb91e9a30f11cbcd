package models

// Video is one search result; URL is the canonical watch URL built from the
// provider's video id.
type Video struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}
