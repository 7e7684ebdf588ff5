// Package api serves a read-only HTTP view of the daemon: the current
// motor state and the recent log buffer. It never writes to the motors
// and an unavailable API never affects the safety pipeline.
package api

import (
	"net"
	"net/http"

	"github.com/go-errors/errors"
	"github.com/gorilla/mux"

	"github.com/rider-pi/motord/controller"
	"github.com/rider-pi/motord/ringlog"
)

type Config struct {
	State   *controller.State
	RingLog *ringlog.RingLog
	Version string
	Log     Logger
}

type Api struct {
	state   *controller.State
	ringLog *ringlog.RingLog
	version string
	router  *mux.Router
	log     Logger
}

func New(config *Config) *Api {
	api := &Api{
		state:   config.State,
		ringLog: config.RingLog,
		version: config.Version,
		router:  mux.NewRouter(),
	}

	if config.Log != nil {
		api.log = config.Log
	} else {
		api.log = noopLogger{}
	}

	api.router.Handle("/api/v1/motor", api.handleGetMotor()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/logs", api.handleGetLogs()).Methods(http.MethodGet)

	return api
}

func (a *Api) Serve(l net.Listener) error {
	err := http.Serve(l, a.router)
	if err != nil {
		return errors.Errorf("unable to serve api: %v", err)
	}

	return nil
}
