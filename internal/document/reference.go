package document

import "strings"

type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatUnsupported Format = "unsupported"
)

// Reference is a resume location with its format inferred once from the URL.
// NewReference is the only constructor; the zero value reads as unsupported.
type Reference struct {
	url    string
	format Format
}

// NewReference infers the format by a case-sensitive suffix match on the raw
// URL. URLs carrying a query string or no extension are unsupported.
func NewReference(rawURL string) Reference {
	return Reference{url: rawURL, format: detectFormat(rawURL)}
}

func (r Reference) URL() string { return r.url }

func (r Reference) Format() Format { return r.format }

func detectFormat(rawURL string) Format {
	switch {
	case strings.HasSuffix(rawURL, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(rawURL, ".docx"):
		return FormatDOCX
	default:
		return FormatUnsupported
	}
}
