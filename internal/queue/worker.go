package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandleSchedulePostTask publishes the post when its delayed task fires. A
// publish failure is not retried: the outcome is already recorded in post
// history, and the scanner picks up anything the queue missed.
func (j *Queue) HandleSchedulePostTask(ctx context.Context, task *asynq.Task) error {
	var payload SchedulePostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if _, err := j.pub.Publish(ctx, payload.PostID); err != nil {
		log.Printf("Error publishing post %d: %v", payload.PostID, err)
	}

	return nil
}
