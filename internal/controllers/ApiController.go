package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"net/http"
	"profiled/internal/lookback"
	"profiled/internal/models"
	"profiled/internal/providers"
	"profiled/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.ProfileServiceInterface
}

func NewApiController(logger providers.Logger, service services.ProfileServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func isBadRequest(err error) bool {
	return errors.Is(err, models.ErrInvalidQuery) ||
		errors.Is(err, lookback.ErrUnknownLookbackWindow)
}

func (ac *ApiController) ReceiveProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.InputProfile
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err = ac.service.AddProfile(r.Context(), &payload)
	if err != nil {
		if isBadRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ac.logger.Errorf(providers.TypePost, "Unable to store profile for %s: %s", payload.Urn, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) GetProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := cast.ToInt64E(query.Get("start"))
	if err != nil {
		http.Error(w, "start must be epoch milliseconds", http.StatusBadRequest)
		return
	}
	end, err := cast.ToInt64E(query.Get("end"))
	if err != nil {
		http.Error(w, "end must be epoch milliseconds", http.StatusBadRequest)
		return
	}

	profiles, err := ac.service.GetDataProfiles(r.Context(), models.ProfileQuery{
		Urn:             query.Get("urn"),
		StartTimeMillis: start,
		EndTimeMillis:   end,
	})
	if err != nil {
		if isBadRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ac.logger.Errorf(providers.TypeGet, "Unable to load profiles: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (ac *ApiController) GetUrns(w http.ResponseWriter, r *http.Request) {
	urns, err := ac.service.GetUrns(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Unable to list urns: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, urns)
}

func (ac *ApiController) GetWindows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lookback.LookbackWindows)
}
