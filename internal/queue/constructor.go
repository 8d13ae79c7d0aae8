package queue

import (
	"github.com/manypost/manypost/internal/service"
)

type Queue struct {
	pub service.PublisherService
}

func NewQueue(pub service.PublisherService) *Queue {
	return &Queue{pub: pub}
}

const TaskTypeSchedulePost = "publish:post"

type SchedulePostPayload struct {
	PostID int64 `json:"post_id"`
}
