package asynq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voltshop/pkg/config"
	"voltshop/pkg/logger"

	"github.com/hibiken/asynq"
)

const (
	TypeBulkApply = "spec:bulk_apply"
)

// BulkApplyPayload is the queued form of a bulk specification edit
type BulkApplyPayload struct {
	TemplateID int64       `json:"template_id"`
	Value      interface{} `json:"value"`
	ProductIDs []string    `json:"product_ids"`
}

// Manager queue manager
type Manager struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewManager creates queue manager
func NewManager(cfg *config.Config) (*Manager, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues: map[string]int{
				"default": 10,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Second
			},
		},
	)

	mux := asynq.NewServeMux()

	return &Manager{
		client: client,
		server: server,
		mux:    mux,
	}, nil
}

// EnqueueBulkApply enqueues a bulk specification edit for background processing
func (m *Manager) EnqueueBulkApply(ctx context.Context, payload *BulkApplyPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bulk apply payload: %w", err)
	}

	task := asynq.NewTask(TypeBulkApply, data)

	opts := []asynq.Option{
		asynq.MaxRetry(config.GlobalConfig.Queue.MaxRetry),
	}

	info, err := m.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue bulk apply: %w", err)
	}

	logger.InfoCtx(ctx, "bulk apply enqueued, task_id: %s, template_id: %d, products: %d",
		info.ID, payload.TemplateID, len(payload.ProductIDs))

	return info.ID, nil
}

// GetTaskInfo retrieves task information
func (m *Manager) GetTaskInfo(taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.GlobalConfig.Redis.Addr,
		Password: config.GlobalConfig.Redis.Password,
		DB:       config.GlobalConfig.Redis.DB,
	})
	defer inspector.Close()

	info, err := inspector.GetTaskInfo("default", taskID)
	if err == nil {
		return info, nil
	}

	return nil, fmt.Errorf("task not found: %s", taskID)
}

// RegisterHandler registers task handler
func (m *Manager) RegisterHandler(pattern string, handler asynq.Handler) {
	m.mux.Handle(pattern, handler)
}

// Start starts queue processor
func (m *Manager) Start() error {
	logger.InfoCtx(context.Background(), "starting queue server")
	return m.server.Start(m.mux)
}

// Stop stops queue processor
func (m *Manager) Stop() {
	logger.InfoCtx(context.Background(), "stopping queue server")
	m.server.Stop()
	m.server.Shutdown()
}

// Close closes client
func (m *Manager) Close() error {
	return m.client.Close()
}

// GetPendingTaskCount retrieves pending task count
func (m *Manager) GetPendingTaskCount() (int, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.GlobalConfig.Redis.Addr,
		Password: config.GlobalConfig.Redis.Password,
		DB:       config.GlobalConfig.Redis.DB,
	})
	defer inspector.Close()

	stats, err := inspector.GetQueueInfo("default")
	if err != nil {
		return 0, err
	}

	return stats.Pending, nil
}
