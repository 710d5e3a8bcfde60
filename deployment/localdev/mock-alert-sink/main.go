package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type criticalityAlert struct {
	VesselID   string    `json:"vessel_id"`
	Components []string  `json:"components"`
	RaisedAt   time.Time `json:"raised_at"`
}

// Local development stand-in for the plant alerting system: accepts the
// engine's criticality webhook and prints what it received.
func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/alerts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var alert criticalityAlert
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		log.Printf("criticality alert: vessel=%s components=%v raised_at=%s",
			alert.VesselID, alert.Components, alert.RaisedAt.Format(time.RFC3339))
		w.WriteHeader(http.StatusAccepted)
	})

	addr := ":9090"
	log.Printf("mock alert sink listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
