package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-fleetops/internal/events"
	"go-fleetops/internal/invoice"
	invoiceerrors "go-fleetops/internal/invoice/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeJobLifecycle drafts an invoice for every completed job. Redelivered
// events hit the uq_invoices_job unique index and are committed as no-ops.
func ConsumeJobLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	invoiceService invoice.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.job_lifecycle")
	log.Info("job lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("job lifecycle consumer stopped")
				return
			}
			log.Error("fetch job lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.JobCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode job_completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = invoiceService.CreateFromJob(ctx, invoice.CreateInvoiceRequest{
			JobID: event.JobID,
		})
		if err != nil {
			if errors.Is(err, invoiceerrors.ErrJobAlreadyInvoiced) {
				log.Warn("invoice already exists for job, skipping",
					zap.String("job_id", event.JobID),
					zap.String("job_number", event.JobNumber),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create draft invoice from job_completed failed",
				zap.String("job_id", event.JobID),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit job lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("draft invoice created from job_completed event",
			zap.String("job_id", event.JobID),
			zap.String("job_number", event.JobNumber),
		)
	}
}
