package api

import (
	"net/http"
	"time"
)

type getMotorResponse struct {
	Left           int     `json:"left"`
	Right          int     `json:"right"`
	Stopped        bool    `json:"stopped"`
	LastCommandAge float64 `json:"last_command_age_seconds"`
	Version        string  `json:"version"`
}

func (a *Api) handleGetMotor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		left, right, lastUpdate := a.state.Snapshot()

		res := &getMotorResponse{
			Left:           left,
			Right:          right,
			Stopped:        left == 0 && right == 0,
			LastCommandAge: time.Since(lastUpdate).Seconds(),
			Version:        a.version,
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}
