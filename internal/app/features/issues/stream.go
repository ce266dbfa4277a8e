// internal/app/features/issues/stream.go
package issues

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
| GET /issues/stream                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeStream pushes the issue list over server-sent events, one complete
// snapshot per change.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	q := livequery.Query{
		Collection: "community_issues",
		OrderBy:    bson.D{{Key: "created_at", Value: -1}},
	}
	if status := query.Get(r, "status"); status != "" {
		q.Filter = bson.M{"status": status}
	}

	sub, err := h.Watcher.Subscribe(r.Context(), q)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "issue stream subscribe failed", err, "A server error occurred.", "/issues")
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
			payload, err := encodeIssueSnapshot(docs)
			if err != nil {
				h.Log.Error("encode issue snapshot failed",
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

func encodeIssueSnapshot(docs []bson.Raw) ([]byte, error) {
	list := make([]models.CommunityIssue, 0, len(docs))
	for _, doc := range docs {
		var issue models.CommunityIssue
		if err := bson.Unmarshal(doc, &issue); err != nil {
			return nil, err
		}
		list = append(list, issue)
	}
	return json.Marshal(list)
}
