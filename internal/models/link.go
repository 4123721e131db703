package models

// LinkRef is a relative Markdown link found in a README
type LinkRef struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}
