package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	service "github.com/okian/tipper/internal/app"
)

// tipRequest mirrors the OpenAPI schema for POST /tip. Pointers tell a
// missing field apart from an explicit 0.
type tipRequest struct {
	ServiceQuality *float64 `json:"service_quality"`
	FoodQuality    *float64 `json:"food_quality"`
}

func (r tipRequest) toServiceRequest() (service.Request, error) {
	switch {
	case r.ServiceQuality == nil:
		return service.Request{}, errors.New("missing service_quality")
	case r.FoodQuality == nil:
		return service.Request{}, errors.New("missing food_quality")
	}
	return service.Request{ServiceQuality: *r.ServiceQuality, FoodQuality: *r.FoodQuality}, nil
}

// TipHandler handles tip calculation requests.
type TipHandler struct {
	deps Dependencies
}

// NewTipHandler creates a new tip handler.
func NewTipHandler(deps Dependencies) *TipHandler {
	return &TipHandler{deps: deps}
}

// HandleTip serves POST /tip with a JSON body and GET /tip?service=&food=.
func (h *TipHandler) HandleTip(w http.ResponseWriter, r *http.Request) {
	const op = "api.tip"

	var (
		req service.Request
		err error
	)
	switch r.Method {
	case http.MethodPost:
		req, err = decodeTipBody(r)
	case http.MethodGet:
		req, err = decodeTipQuery(r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Calculate(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrOutOfRange) {
			writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrInvalidInput, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decodeTipBody(r *http.Request) (service.Request, error) {
	var body tipRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return service.Request{}, fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return service.Request{}, errors.New("decode body: unexpected data after JSON object")
	}
	return body.toServiceRequest()
}

func decodeTipQuery(r *http.Request) (service.Request, error) {
	q := r.URL.Query()
	s, err := parseQueryFloat(q.Get("service"), "service")
	if err != nil {
		return service.Request{}, err
	}
	f, err := parseQueryFloat(q.Get("food"), "food")
	if err != nil {
		return service.Request{}, err
	}
	return service.Request{ServiceQuality: s, FoodQuality: f}, nil
}

func parseQueryFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", name, raw)
	}
	return v, nil
}
