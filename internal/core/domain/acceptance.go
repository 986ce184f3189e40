package domain

// RejectionCode identifies why a file was not admitted
type RejectionCode string

const (
	RejectionTypeNotAllowed   RejectionCode = "TypeNotAllowed"
	RejectionSizeExceeded     RejectionCode = "SizeExceeded"
	RejectionTooManyFiles     RejectionCode = "TooManyFiles"
	RejectionPlatformRejected RejectionCode = "PlatformRejected"
)

// RejectionReason pairs a code with a human readable message
type RejectionReason struct {
	Code    RejectionCode
	Message string
}

// RejectionRecord pairs a rejected file with every reason it failed
type RejectionRecord struct {
	File    RawFile
	Reasons []RejectionReason
}

// PlatformRejection is an entry the drop source refused before filtering (directories, unreadable paths)
type PlatformRejection struct {
	File   RawFile
	Reason string
}

// Drop is one drop or selection event
type Drop struct {
	Files    []RawFile
	Rejected []PlatformRejection
}

// DropResult is what a drop produced
type DropResult struct {
	Admitted []FileEntry
	Rejected []RejectionRecord
}

// AcceptanceRule configures admission. It is not mutated after construction.
type AcceptanceRule struct {
	// AcceptedTypes maps a media type pattern ("application/pdf", "image/*") to its allowed extensions
	AcceptedTypes map[string][]string
	MaxSizeBytes  int64
	AllowMultiple bool
}

// DefaultMaxSizeBytes is the default per file limit (10MB)
const DefaultMaxSizeBytes int64 = 10 << 20

// DefaultAcceptedTypes is the set of document types accepted by the intake
func DefaultAcceptedTypes() map[string][]string {
	return map[string][]string{
		// Documents
		"application/pdf":    {".pdf"},
		"application/msword": {".doc"},
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {".docx"},

		// Emails
		"message/rfc822":             {".eml"},
		"application/vnd.ms-outlook": {".msg"},

		// Spreadsheets & data
		"text/csv":                 {".csv"},
		"application/xml":          {".xml"},
		"text/xml":                 {".xml"},
		"application/vnd.ms-excel": {".xls"},
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {".xlsx"},

		// Images & scans
		"image/png":  {".png"},
		"image/jpeg": {".jpg", ".jpeg"},
		"image/tiff": {".tiff", ".tif"},
	}
}

// DefaultAcceptanceRule returns the rule used when nothing is configured
func DefaultAcceptanceRule() AcceptanceRule {
	return AcceptanceRule{
		AcceptedTypes: DefaultAcceptedTypes(),
		MaxSizeBytes:  DefaultMaxSizeBytes,
		AllowMultiple: true,
	}
}
