package document

import "strings"

// WarningMarker prefixes every placeholder the reader substitutes for text.
const WarningMarker = "⚠️"

const (
	MarkerUnsupported = WarningMarker + " Unsupported resume format. Please upload a .pdf or .docx file."
	MarkerNoTextPDF   = WarningMarker + " No text could be extracted from the PDF."
	MarkerNoTextDOCX  = WarningMarker + " No text found in DOCX."
)

// IsMarker reports whether text is a placeholder rather than document content.
func IsMarker(text string) bool {
	return strings.HasPrefix(text, WarningMarker)
}

func noTextMarker(format Format) string {
	if format == FormatDOCX {
		return MarkerNoTextDOCX
	}
	return MarkerNoTextPDF
}

func errorMarker(format Format, err error) string {
	label := "PDF"
	if format == FormatDOCX {
		label = "DOCX"
	}
	return WarningMarker + " Error reading " + label + ": " + err.Error()
}
