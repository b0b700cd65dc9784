package services

import (
	"strings"
)

// DirectImageURL turns a Google Drive share link into a direct download link.
// Other URLs are returned unchanged.
func DirectImageURL(raw string) string {
	url := strings.TrimSpace(raw)
	if !strings.Contains(url, "drive.google.com") {
		return url
	}

	var id string
	switch {
	case strings.Contains(url, "/d/"):
		id = strings.SplitN(strings.SplitN(url, "/d/", 2)[1], "/", 2)[0]
	case strings.Contains(url, "id="):
		id = strings.SplitN(strings.SplitN(url, "id=", 2)[1], "&", 2)[0]
	}
	if id == "" {
		return url
	}
	return "https://drive.google.com/uc?export=download&id=" + id
}
