package ads

import (
	"encoding/json"
	"net/http"

	"expensetracker/internal/transport"
)

// Handler serves the ads endpoints. There is no ads storage yet; both
// endpoints echo the request body back.
// TODO: persist ad placements once the mobile client defines what an ad
// record looks like.
type Handler struct {
	*transport.BaseHandler
}

func NewHandler(base *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: base}
}

func (h *Handler) GetAds(w http.ResponseWriter, r *http.Request) {
	h.WriteData(w, http.StatusOK, "Ads fetched successfully", decodeBody(r))
}

func (h *Handler) CreateAds(w http.ResponseWriter, r *http.Request) {
	h.WriteData(w, http.StatusOK, "Ads created successfully", decodeBody(r))
}

func decodeBody(r *http.Request) any {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil
	}
	return body
}
