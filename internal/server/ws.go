package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/pkg/skymodel"
)

// Query kinds accepted over the websocket.
const (
	KindRadiance      = "radiance"
	KindSolar         = "solar"
	KindTransmittance = "transmittance"
)

// Query is one lookup of a batch.
type Query struct {
	Kind       string   `json:"kind"`
	Theta      float64  `json:"theta"`
	Gamma      float64  `json:"gamma,omitempty"`
	Shadow     float64  `json:"shadow,omitempty"`
	Wavelength float64  `json:"wavelength"`
	Distance   *float64 `json:"distance,omitempty"` // Omitted means the ray leaves the atmosphere
}

// SkyParams selects the sky for a batch. Elevation is in degrees.
type SkyParams struct {
	Elevation  float64 `json:"elevation"`
	Visibility float64 `json:"visibility"`
	Albedo     float64 `json:"albedo"`
}

// Batch is one websocket request message.
type Batch struct {
	ID      string     `json:"id,omitempty"`
	Sky     *SkyParams `json:"sky,omitempty"`
	Queries []Query    `json:"queries"`
}

// BatchResult answers a Batch. Values line up with the queries.
type BatchResult struct {
	ID     string    `json:"id,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Error  string    `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Debug("websocket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var batch Batch
		var res BatchResult
		if err := json.Unmarshal(data, &batch); err != nil {
			res.Error = "malformed batch: " + err.Error()
		} else {
			res = s.evaluate(batch)
		}

		if err := conn.WriteJSON(res); err != nil {
			log.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

// evaluate answers every query of a batch against one model view.
func (s *Server) evaluate(b Batch) BatchResult {
	res := BatchResult{ID: b.ID}
	if len(b.Queries) > s.opts.MaxBatch {
		res.Error = fmt.Sprintf("batch of %d queries exceeds limit %d", len(b.Queries), s.opts.MaxBatch)
		return res
	}

	m := s.model
	if b.Sky != nil {
		m = m.WithParams(skymodel.Params{
			Elevation:  b.Sky.Elevation * math.Pi / 180,
			Visibility: b.Sky.Visibility,
			Albedo:     b.Sky.Albedo,
		})
	}

	res.Values = make([]float64, len(b.Queries))
	for i, q := range b.Queries {
		switch q.Kind {
		case KindRadiance:
			res.Values[i] = m.SkyRadiance(q.Theta, q.Gamma, q.Shadow, q.Wavelength)
		case KindSolar:
			res.Values[i] = m.SolarRadiance(q.Theta, q.Wavelength)
		case KindTransmittance:
			distance := skymodel.InfiniteDistance
			if q.Distance != nil {
				distance = *q.Distance
			}
			res.Values[i] = m.Transmittance(q.Theta, q.Wavelength, distance)
		default:
			return BatchResult{ID: b.ID, Error: fmt.Sprintf("query %d: unknown kind %q", i, q.Kind)}
		}
	}
	return res
}
