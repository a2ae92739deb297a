package document

import (
	"fmt"
	"strings"
)

const (
	driveHost        = "drive.google.com"
	driveViewSegment = "view"
	driveIDDelimiter = "/d/"
	driveDownloadURL = "https://drive.google.com/uc?export=download&id=%s"
)

// NormalizeURL rewrites a Google Drive share link into its direct-download
// form. Any other input, including a share link without a file id, is
// returned unchanged.
func NormalizeURL(raw string) string {
	if !strings.Contains(raw, driveHost) || !strings.Contains(raw, driveViewSegment) {
		return raw
	}

	_, rest, found := strings.Cut(raw, driveIDDelimiter)
	if !found {
		return raw
	}

	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return raw
	}

	return fmt.Sprintf(driveDownloadURL, id)
}
