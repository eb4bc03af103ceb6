package httpapi

import (
	"net/http"
)

type CreateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	page, err := s.Locations.List(r.Context(), s.pageRequest(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, "locations", page)
}

func (s *Server) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	location, err := s.Locations.Create(r.Context(), req.Latitude, req.Longitude)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, location)
}

func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "locationId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	location, err := s.Locations.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, location)
}

func (s *Server) NearbyLocations(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat", true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lng, err := queryFloat(r, "lng", true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	radius, err := queryFloat(r, "radius_km", false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items, err := s.Locations.Nearby(r.Context(), lat, lng, radius)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}
