package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"profiled/internal/services"
	"time"
)

type HealthController struct {
	service   services.ProfileServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Profiles      int     `json:"profiles"`
	Datasets      int     `json:"datasets"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	resp := healthResponse{Status: "ok"}

	profiles, err := hc.service.GetProfileCount(r.Context())
	if err != nil {
		status = http.StatusServiceUnavailable
		resp.Status = "storage unavailable"
	}
	urns, err := hc.service.GetUrns(r.Context())
	if err != nil {
		status = http.StatusServiceUnavailable
		resp.Status = "storage unavailable"
	}

	uptime := time.Since(hc.startTime)
	resp.Uptime = formatDuration(uptime)
	resp.UptimeSeconds = uptime.Seconds()
	resp.Profiles = profiles
	resp.Datasets = len(urns)

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.ProfileServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
