package queue

import (
	"encoding/json"

	"github.com/freshgo-shop/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskCheckoutConfirmation 结账确认通知任务
const TaskCheckoutConfirmation = constants.TaskCheckoutConfirmation

// CheckoutConfirmationPayload 结账确认任务载荷
type CheckoutConfirmationPayload struct {
	OrderRef    string `json:"order_ref"`
	SessionID   string `json:"session_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	TotalAmount string `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// NewCheckoutConfirmationTask 创建结账确认任务
func NewCheckoutConfirmationTask(payload CheckoutConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutConfirmation, data), nil
}
