package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"money_saver/internal/domain/entity"
	"money_saver/internal/metrics"
	"money_saver/pkg/application/modules"
	"money_saver/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeDealAlert = "deal:alert"
	AlertsQueue   = "alerts"

	alertRetention = 24 * time.Hour
	alertMaxRetry  = 5
)

// Queues is the asynq queue priority map for the alert worker.
func Queues() modules.AsynqQueues {
	return modules.AsynqQueues{AlertsQueue: 1}
}

// NewAlertTask builds a deal:alert task. The task id is stable per deal and day,
// so a deal is announced at most once a day across restarts.
func NewAlertTask(alert entity.Alert) (*asynq.Task, error) {
	payload, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("queue.NewAlertTask: %w", err)
	}

	id := "alert:" + alert.Deal.ID + ":" + alert.DetectedAt.UTC().Format(time.DateOnly)

	return asynq.NewTask(
		TypeDealAlert,
		payload,
		asynq.Queue(AlertsQueue),
		asynq.TaskID(id),
		asynq.MaxRetry(alertMaxRetry),
		asynq.Retention(alertRetention),
	), nil
}

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Publisher struct {
	client Enqueuer
}

func NewPublisher(client Enqueuer) *Publisher {
	return &Publisher{client: client}
}

// Run enqueues alerts from the channel until it is closed.
func (p *Publisher) Run(ctx context.Context, alerts <-chan entity.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}

			if err := p.Publish(ctx, alert); err != nil {
				logger(ctx).Error("failed to enqueue alert",
					slog.String(logx.FieldDealID, alert.Deal.ID),
					logx.Error(err),
				)
			}
		}
	}
}

func (p *Publisher) Publish(ctx context.Context, alert entity.Alert) error {
	task, err := NewAlertTask(alert)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		metrics.Alerts.WithLabelValues(metrics.ResultSkip).Inc()

		return nil
	}

	if err != nil {
		return fmt.Errorf("queue.Publish: %w", err)
	}

	logger(ctx).Debug("alert enqueued",
		slog.String(logx.FieldDealID, alert.Deal.ID),
		slog.String(logx.FieldTaskID, info.ID),
	)

	return nil
}

type AlertSender interface {
	SendAlert(ctx context.Context, alert entity.Alert) error
}

// AlertHandler delivers deal:alert tasks.
type AlertHandler struct {
	sender AlertSender
}

func NewAlertHandler(sender AlertSender) *AlertHandler {
	return &AlertHandler{sender: sender}
}

func (h *AlertHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var alert entity.Alert
	if err := json.Unmarshal(task.Payload(), &alert); err != nil {
		return fmt.Errorf("queue.Handle: %w: %w", err, asynq.SkipRetry)
	}

	if err := h.sender.SendAlert(ctx, alert); err != nil {
		return fmt.Errorf("queue.Handle: %w", err)
	}

	return nil
}

func (h *AlertHandler) AsynqHandler() modules.AsynqHandler {
	return modules.AsynqHandler{
		Pattern: TypeDealAlert,
		Handle:  h.Handle,
	}
}
