package stats

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

type Snapshotter interface {
	Snapshot() []mw.RouteLatency
}

type Handler struct {
	Source Snapshotter
}

// Latency godoc
// @Summary     Per-route latency percentiles
// @Description Гистограммы с момента старта процесса, миллисекунды.
// @Tags        stats
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]mw.RouteLatency}
// @Router      /v1/stats [get]
func (h *Handler) Latency(w http.ResponseWriter, r *http.Request) {
	v1.WriteOKData(w, r, h.Source.Snapshot())
}
