package httpupload

import (
	"context"
	"doc-intake/internal/config"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// fileField is the multipart field the upload endpoint reads
const fileField = "file"

// maxMessageBytes bounds how much of an error body is kept
const maxMessageBytes = 512

// Client posts one file per request as multipart form data
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewClient creates a Client for the configured upload url
func NewClient(cfg config.IntakeConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		url:        cfg.UploadURL,
		logger:     logger,
	}
}

// Transfer streams the entry content to the upload endpoint. Progress follows the bytes
// handed to the transport, a non 2xx response fails with the server message.
func (c *Client) Transfer(ctx context.Context, entry domain.FileEntry, progress port.ProgressFunc) error {
	if entry.Payload.Open == nil {
		return fmt.Errorf("%w: %s has no content", domain.ErrTransferFailed, entry.Payload.Name)
	}
	src, err := entry.Payload.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", entry.Payload.Name, err)
	}
	defer src.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeForm(writer, entry.Payload, &progressReader{
			reader:   src,
			total:    entry.Payload.Size,
			progress: progress,
		}))
	}()
	defer func() {
		// unblocks the writer when the request ended early
		_ = pr.Close()
		<-done
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, pr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", domain.ErrTransferFailed, serverMessage(resp))
	}

	c.logger.Debug("file posted", "file", entry.Payload.Name, "status", resp.StatusCode)
	if progress != nil {
		progress(100)
	}
	return nil
}

func writeForm(writer *multipart.Writer, file domain.RawFile, content io.Reader) error {
	contentType := file.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, escapeQuotes(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	return writer.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// serverMessage prefers the "message" field of a JSON body, then the raw body, then the status line
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMessageBytes))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var payload struct {
		Message string `json:"message"`
		Detail  any    `json:"detail"`
	}
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil {
		switch {
		case payload.Message != "":
			return fmt.Sprintf("%s: %s", resp.Status, payload.Message)
		case payload.Detail != nil:
			return fmt.Sprintf("%s: %v", resp.Status, payload.Detail)
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, text)
}

// progressReader reports the share of total read so far
type progressReader struct {
	reader    io.Reader
	total     int64
	bytesRead int64
	progress  port.ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.bytesRead += int64(n)
		if pr.progress != nil && pr.total > 0 {
			// 100 is reported once the server answered
			pr.progress(int(min(pr.bytesRead*99/pr.total, 99)))
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("failed to read content: %w", err)
	}
	return n, err
}
