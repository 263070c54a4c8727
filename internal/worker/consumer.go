package worker

import (
	"context"
	"encoding/json"

	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/provider"
	"github.com/freshgo-shop/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutConfirmation, c.handleCheckoutConfirmation)
}

// handleCheckoutConfirmation 处理结账确认通知
// 当前店面不落后端订单也不接外部邮件服务，只记录结构化确认日志；
// 接入真实通知渠道时在这里替换。
func (c *Consumer) handleCheckoutConfirmation(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CheckoutConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_checkout_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderRef == "" {
		logger.Debugw("worker_checkout_confirmation_skip_invalid_payload")
		return nil
	}
	logger.Infow("checkout_confirmation_notified",
		"order_ref", payload.OrderRef,
		"email", payload.Email,
		"full_name", payload.FullName,
		"total_amount", payload.TotalAmount,
		"item_count", payload.ItemCount,
	)
	return nil
}
