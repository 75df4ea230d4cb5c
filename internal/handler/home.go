package handler

import "net/http"

// HandleHome is the liveness probe.
//
// HTTP: GET /
// 200:  {"message": "JobTrackr is live!"}
func HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "JobTrackr is live!"})
}
