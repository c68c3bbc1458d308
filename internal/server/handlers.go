package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/skyground/pkg/skymodel"
)

// ValueResponse carries one query result.
type ValueResponse struct {
	Value  float64         `json:"value"`
	Params skymodel.Params `json:"params"`
}

// InfoResponse describes the served dataset.
type InfoResponse struct {
	Info          skymodel.Info   `json:"info"`
	Params        skymodel.Params `json:"params"`
	WavelengthMin float64         `json:"wavelength_min"`
	WavelengthMax float64         `json:"wavelength_max"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	lo, hi := s.model.WavelengthRange()
	s.writeJSON(w, http.StatusOK, InfoResponse{
		Info:          s.model.Info(),
		Params:        s.model.Params(),
		WavelengthMin: lo,
		WavelengthMax: hi,
	})
}

func (s *Server) handleRadiance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, err := s.view(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var theta, gamma, shadow, wl float64
	if err := parseFloats(q, map[string]*float64{
		"theta": &theta, "gamma": &gamma, "wavelength": &wl,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if shadow, err = optionalFloat(q, "shadow", 0); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, ValueResponse{
		Value:  m.SkyRadiance(theta, gamma, shadow, wl),
		Params: m.Params(),
	})
}

func (s *Server) handleSolar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, err := s.view(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var theta, wl float64
	if err := parseFloats(q, map[string]*float64{"theta": &theta, "wavelength": &wl}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, ValueResponse{
		Value:  m.SolarRadiance(theta, wl),
		Params: m.Params(),
	})
}

func (s *Server) handleTransmittance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, err := s.view(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var theta, wl float64
	if err := parseFloats(q, map[string]*float64{"theta": &theta, "wavelength": &wl}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	distance, err := optionalFloat(q, "distance", skymodel.InfiniteDistance)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, ValueResponse{
		Value:  m.Transmittance(theta, wl, distance),
		Params: m.Params(),
	})
}

func (s *Server) handleAngles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var el, az float64
	if err := parseFloats(q, map[string]*float64{"sun_elevation": &el, "sun_azimuth": &az}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := parseVec(q.Get("view"))
	if err != nil {
		http.Error(w, "view: "+err.Error(), http.StatusBadRequest)
		return
	}
	up := r3.Vec{Z: 1}
	if q.Has("up") {
		if up, err = parseVec(q.Get("up")); err != nil {
			http.Error(w, "up: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, skymodel.ComputeAngles(el, az, r3.Unit(view), r3.Unit(up)))
}

// view returns the model configured by the optional elevation (degrees),
// visibility and albedo query parameters.
func (s *Server) view(q url.Values) (*skymodel.Model, error) {
	if !q.Has("elevation") && !q.Has("visibility") && !q.Has("albedo") {
		return s.model, nil
	}

	p := s.model.Params()
	el, err := optionalFloat(q, "elevation", p.Elevation*180/math.Pi)
	if err != nil {
		return nil, err
	}
	p.Elevation = el * math.Pi / 180
	if p.Visibility, err = optionalFloat(q, "visibility", p.Visibility); err != nil {
		return nil, err
	}
	if p.Albedo, err = optionalFloat(q, "albedo", p.Albedo); err != nil {
		return nil, err
	}
	if err := p.Check(); err != nil {
		s.log.Debug("parameters outside fitted range", zap.Error(err))
	}
	return s.model.WithParams(p), nil
}

// parseFloats parses required float query parameters.
func parseFloats(q url.Values, dst map[string]*float64) error {
	for name, ptr := range dst {
		raw := q.Get(name)
		if raw == "" {
			return fmt.Errorf("missing %s", name)
		}
		v, err := parseFinite(raw)
		if err != nil {
			return fmt.Errorf("invalid %s", name)
		}
		*ptr = v
	}
	return nil
}

func optionalFloat(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := parseFinite(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

// parseFinite rejects NaN and infinities, which JSON cannot carry back.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", raw)
	}
	return v, nil
}

// parseVec parses "x,y,z" into a non-zero vector.
func parseVec(raw string) (r3.Vec, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("expected 3 comma-separated values")
	}
	var c [3]float64
	for i, p := range parts {
		v, err := parseFinite(p)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("invalid component %q", p)
		}
		c[i] = v
	}
	v := r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	if r3.Norm(v) == 0 {
		return r3.Vec{}, fmt.Errorf("zero vector")
	}
	return v, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}
