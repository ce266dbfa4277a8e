// internal/app/features/fooddonation/stream.go
package fooddonation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/livequery"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /food-donation/stream                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeStream pushes the donation board over server-sent events. Each event
// carries the complete current result set; the client replaces its list
// rather than patching it.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	q := livequery.Query{
		Collection: "food_donations",
		OrderBy:    bson.D{{Key: "created_at", Value: -1}},
	}
	if status := query.Get(r, "status"); status != "" {
		q.Filter = bson.M{"status": status}
	}

	sub, err := h.Watcher.Subscribe(r.Context(), q)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "donation stream subscribe failed", err, "A server error occurred.", "/food-donation")
		return
	}
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case docs, open := <-sub.Snapshots():
			if !open {
				return
			}
			payload, err := encodeDonationSnapshot(docs)
			if err != nil {
				h.Log.Error("encode donation snapshot failed",
					zap.String("subscription", sub.ID()),
					zap.Error(err))
				return
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func encodeDonationSnapshot(docs []bson.Raw) ([]byte, error) {
	list := make([]models.FoodDonation, 0, len(docs))
	for _, doc := range docs {
		var d models.FoodDonation
		if err := bson.Unmarshal(doc, &d); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return json.Marshal(list)
}
