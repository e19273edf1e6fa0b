package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	eventpkg "github.com/stormhead-org/community/internal/event"
	"github.com/stormhead-org/community/internal/lib"
	metricspkg "github.com/stormhead-org/community/internal/metrics"
	ormpkg "github.com/stormhead-org/community/internal/orm"
)

// Reader is the consuming side of the broker.
type Reader interface {
	ReadMessage(ctx context.Context) (string, []byte, error)
}

type Worker struct {
	context   context.Context
	cancel    func()
	waitGroup sync.WaitGroup
	logger    *zap.Logger
	router    *Router
	reader    Reader
	database  *ormpkg.PostgresClient
	metrics   *metricspkg.Metrics
}

func NewWorker(logger *zap.Logger, reader Reader, database *ormpkg.PostgresClient, metrics *metricspkg.Metrics) *Worker {
	context, cancel := context.WithCancel(context.Background())
	this := &Worker{
		context:  context,
		cancel:   cancel,
		logger:   logger,
		reader:   reader,
		database: database,
		metrics:  metrics,
	}
	this.router = NewRouter(
		map[string][]EventHandler{
			eventpkg.SERVER_CREATE: {
				this.validated(eventpkg.SERVER_CREATE, this.ServerCreateHandler),
			},
			eventpkg.SERVER_UPDATE: {
				this.validated(eventpkg.SERVER_UPDATE, this.ServerUpdateHandler),
			},
			eventpkg.SERVER_INVITE_ROTATE: {
				this.validated(eventpkg.SERVER_INVITE_ROTATE, this.ServerInviteRotateHandler),
			},
			eventpkg.SERVER_JOIN: {
				this.validated(eventpkg.SERVER_JOIN, this.ServerJoinHandler),
			},
			eventpkg.CHANNEL_CREATE: {
				this.validated(eventpkg.CHANNEL_CREATE, this.ChannelCreateHandler),
			},
		},
	)
	return this
}

func (this *Worker) Start() error {
	this.logger.Info("starting event worker")

	this.waitGroup.Add(1)
	go this.worker()
	return nil
}

func (this *Worker) Stop() error {
	this.logger.Info("stopping event worker")

	this.cancel()
	this.waitGroup.Wait()
	return nil
}

func (this *Worker) worker() {
	defer this.waitGroup.Done()

	for {
		select {
		case <-this.context.Done():
			return
		case <-time.After(1 * time.Millisecond):
		}

		event, data, err := this.reader.ReadMessage(this.context)
		if err != nil {
			if this.context.Err() != nil {
				return
			}
			this.logger.Error("error receiving kafka message", zap.Error(err))
			continue
		}

		this.Handle(event, data)
	}
}

// Handle routes one message and records the outcome. Failures are logged and
// the message is dropped.
func (this *Worker) Handle(event string, data []byte) error {
	err := this.router.Handle(event, data)
	if this.metrics != nil {
		label := event
		if errors.Is(err, ErrUnhandledEvent) {
			label = metricspkg.UnknownEvent
		}
		this.metrics.ObserveEvent(label, err)
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrUnhandledEvent):
		this.logger.Debug("skipping kafka message", zap.String("event", event))
	default:
		this.logger.Error("error handling kafka message", zap.String("event", event), zap.Error(err))
	}
	return err
}

func (this *Worker) validated(event string, handler EventHandler) EventHandler {
	schema := schemas[event]
	return func(data []byte) error {
		if schema != nil {
			if err := lib.ValidateJSON(this.context, schema, data); err != nil {
				return err
			}
		}
		return handler(data)
	}
}

func (this *Worker) ServerCreateHandler(data []byte) error {
	var message eventpkg.ServerCreateMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("audit: server created",
		zap.Uint("server_id", message.ServerID),
		zap.Uint("profile_id", message.ProfileID),
		zap.String("name", message.Name),
	)
	return nil
}

func (this *Worker) ServerUpdateHandler(data []byte) error {
	var message eventpkg.ServerUpdateMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("audit: server updated",
		zap.Uint("server_id", message.ServerID),
		zap.String("name", message.Name),
		zap.String("image_url", message.ImageURL),
	)
	return nil
}

func (this *Worker) ServerInviteRotateHandler(data []byte) error {
	var message eventpkg.ServerInviteRotateMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("audit: server invite code rotated", zap.Uint("server_id", message.ServerID))
	return nil
}

func (this *Worker) ServerJoinHandler(data []byte) error {
	var message eventpkg.ServerJoinMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("audit: profile joined server",
		zap.Uint("server_id", message.ServerID),
		zap.Uint("profile_id", message.ProfileID),
		zap.String("role", message.Role),
	)
	return nil
}

func (this *Worker) ChannelCreateHandler(data []byte) error {
	var message eventpkg.ChannelCreateMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	count, err := this.database.CountChannelsByServerID(this.context, message.ServerID)
	if err != nil {
		return err
	}

	this.logger.Info("audit: channel created",
		zap.Uint("server_id", message.ServerID),
		zap.Uint("channel_id", message.ChannelID),
		zap.Uint("profile_id", message.ProfileID),
		zap.String("name", message.Name),
		zap.String("type", message.Type),
		zap.Int64("channels", count),
	)
	return nil
}
