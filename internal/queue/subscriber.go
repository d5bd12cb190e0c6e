package queue

import (
	"encoding/json"
	"log"

	"github.com/unclebandit/phishsim-backend/internal/service"
)

type OpenJob struct {
	Token string `json:"token"`
}

type ClickJob struct {
	Token     string `json:"token"`
	LinkIndex int    `json:"link_index"`
}

// StartTrackingSubscribers wires the interaction recorder onto the queue.
// Handlers absorb every failure: a tracking write that cannot be persisted is
// logged and dropped, per the fire-and-forget policy.
func StartTrackingSubscribers(q Queue, tracking *service.TrackingService) {
	err := q.Subscribe(TopicOpens, func(body []byte) error {
		var job OpenJob
		if err := json.Unmarshal(body, &job); err != nil {
			log.Println("⚠️ invalid open job:", err)
			return nil
		}
		if err := tracking.RecordOpen(job.Token); err != nil {
			log.Println("⚠️ failed to record open:", err)
		}
		return nil
	})
	if err != nil {
		log.Println("⚠️ failed to subscribe to", TopicOpens, ":", err)
	}

	err = q.Subscribe(TopicClicks, func(body []byte) error {
		var job ClickJob
		if err := json.Unmarshal(body, &job); err != nil {
			log.Println("⚠️ invalid click job:", err)
			return nil
		}
		if err := tracking.RecordClick(job.Token, job.LinkIndex); err != nil {
			log.Println("⚠️ failed to record click:", err)
		}
		return nil
	})
	if err != nil {
		log.Println("⚠️ failed to subscribe to", TopicClicks, ":", err)
	}
}
