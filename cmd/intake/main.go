package main

import (
	"context"
	natsbroker "doc-intake/internal/adapters/eventbroker/nats"
	"doc-intake/internal/adapters/notify"
	"doc-intake/internal/adapters/source/localfs"
	"doc-intake/internal/adapters/transfer/httpupload"
	"doc-intake/internal/config"
	"doc-intake/internal/core/domain"
	"doc-intake/internal/core/port"
	"doc-intake/internal/core/service/intake"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	var uploadURL string
	flag.StringVar(&uploadURL, "url", "", "Upload endpoint, overrides INTAKE_UPLOAD_URL (ex: http://localhost:8000/upload/)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-url endpoint] path...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(uploadURL, flag.Args()))
}

// run returns 1 when a file was rejected or failed
func run(uploadURL string, paths []string) int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadIntake()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}
	if uploadURL != "" {
		cfg.Intake.UploadURL = uploadURL
	}

	recent := notify.NewRecent(cfg.Intake.RecentLimit)
	sinks := []port.CompletionSink{recent}

	if cfg.NATS.Enabled() {
		publisher, err := natsbroker.NewNATSPublisher(ctx, cfg.NATS, "intake", logger)
		if err != nil {
			logger.Error("failed to create NATS publisher", "error", err)
			return 1
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close NATS publisher", "error", err)
			}
		}()
		sinks = append(sinks, publisher)
		logger.Info("NATS publisher initialized", "subject", cfg.NATS.Subject)
	}

	service := intake.NewOrchestrator(
		cfg.Intake.Rule(),
		httpupload.NewClient(cfg.Intake, logger),
		notify.NewFanout(sinks...),
		logger,
	)

	result, err := service.OnFilesDropped(localfs.NewSource(logger).Drop(paths))
	if err != nil {
		logger.Error("failed to queue files", "error", err)
		return 1
	}
	printRejections(os.Stdout, result.Rejected)

	summary, err := service.SubmitAll(ctx)
	printEntries(os.Stdout, service)
	printRecent(os.Stdout, recent.List())
	if err != nil {
		logger.Error("upload interrupted", "error", err)
		return 1
	}

	logger.Info("upload finished",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"rejected", len(result.Rejected),
	)
	if summary.Failed > 0 || len(result.Rejected) > 0 {
		return 1
	}
	return 0
}

func printRejections(w io.Writer, records []domain.RejectionRecord) {
	for _, record := range records {
		messages := make([]string, 0, len(record.Reasons))
		for _, reason := range record.Reasons {
			messages = append(messages, reason.Message)
		}
		fmt.Fprintf(w, "rejected  %s: %s\n", record.File.Name, strings.Join(messages, "; "))
	}
}

func printEntries(w io.Writer, service port.IntakeService) {
	for entry := range service.Snapshot() {
		line := fmt.Sprintf("%-9s %s (%d%%)", entry.Status, entry.Payload.Name, entry.ProgressPercent)
		if entry.ErrorDetail != "" {
			line += ": " + entry.ErrorDetail
		}
		fmt.Fprintln(w, line)
	}
}

func printRecent(w io.Writer, uploads []domain.CompletionEvent) {
	if len(uploads) == 0 {
		return
	}
	fmt.Fprintln(w, "recently uploaded:")
	for _, upload := range uploads {
		fmt.Fprintf(w, "  %s  %s (%d bytes)\n", upload.CompletedAt.Format("2006-01-02 15:04:05"), upload.FileName, upload.SizeBytes)
	}
}
