package api

import (
	"net/http"

	"github.com/rider-pi/motord/ringlog"
)

type getLogsResponse struct {
	Entries []ringlog.Entry `json:"entries"`
}

func (a *Api) handleGetLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := &getLogsResponse{
			Entries: a.ringLog.Entries(),
		}

		if res.Entries == nil {
			res.Entries = []ringlog.Entry{}
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}
