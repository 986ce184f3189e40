package intake

import (
	"doc-intake/internal/core/domain"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Decision is the result of evaluating a raw file against an acceptance rule
type Decision struct {
	Admitted bool
	Reasons  []domain.RejectionReason
}

// Evaluate decides whether file may enter the queue. Reasons are cumulative.
func Evaluate(file domain.RawFile, rule domain.AcceptanceRule) Decision {
	var reasons []domain.RejectionReason

	if err := matchType(file, rule.AcceptedTypes); err != nil {
		reasons = append(reasons, domain.RejectionReason{
			Code:    domain.RejectionTypeNotAllowed,
			Message: err.Error(),
		})
	}

	if file.Size > rule.MaxSizeBytes {
		reasons = append(reasons, domain.RejectionReason{
			Code: domain.RejectionSizeExceeded,
			Message: fmt.Sprintf("%s: %d bytes is larger than %d bytes",
				domain.ErrSizeExceeded, file.Size, rule.MaxSizeBytes),
		})
	}

	return Decision{Admitted: len(reasons) == 0, Reasons: reasons}
}

func matchType(file domain.RawFile, accepted map[string][]string) error {
	mimeType := extractMimeType(file.MediaType)

	// a declared type wins when it is usable, the extension is only a fallback
	if mimeType != "" && mimeType != "application/octet-stream" {
		for pattern := range accepted {
			if matchPattern(pattern, mimeType) {
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrTypeNotAllowed, mimeType)
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext == "" {
		return fmt.Errorf("%w: no media type and no file extension", domain.ErrTypeNotAllowed)
	}
	for _, exts := range accepted {
		for _, allowed := range exts {
			if ext == strings.ToLower(allowed) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: extension %s", domain.ErrTypeNotAllowed, ext)
}

func matchPattern(pattern, mimeType string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if base, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(mimeType, base+"/")
	}
	return pattern == mimeType
}

func extractMimeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
