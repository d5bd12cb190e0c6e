// internal/controller/tracking_controller.go
package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

// 1x1 transparent PNG served for every pixel hit.
var transparentPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0A, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

// TrackingController serves the pixel and redirect endpoints. Recording is
// fire-and-forget through the queue; the response never waits on, or varies
// with, the interaction write.
type TrackingController struct {
	Tracking *service.TrackingService
	Queue    queue.Queue
}

// TrackPixel always returns the image, whatever the token looks like.
func (c *TrackingController) TrackPixel(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	job, _ := json.Marshal(queue.OpenJob{Token: token})
	if err := c.Queue.Publish(queue.TopicOpens, job); err != nil {
		log.Println("⚠️ failed to enqueue open:", err)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(transparentPNG)
}

// TrackClick records the click and redirects the browser to the original
// destination, or to the fallback when the link cannot be resolved.
func (c *TrackingController) TrackClick(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	linkIndex, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		linkIndex = -1
	}

	job, _ := json.Marshal(queue.ClickJob{Token: token, LinkIndex: linkIndex})
	if err := c.Queue.Publish(queue.TopicClicks, job); err != nil {
		log.Println("⚠️ failed to enqueue click:", err)
	}

	target := c.Tracking.ResolveClick(token, linkIndex)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
