// Package profiling serves the net/http/pprof handlers for long runs of
// the HD wallet tools.
package profiling

import (
	"net"
	"net/http"

	// Required for profiling
	_ "net/http/pprof"

	"github.com/kaspanet/hdwallet/infrastructure/logger"
	"github.com/kaspanet/hdwallet/util/panics"
)

// Start starts the profiling server on localhost:port
func Start(port string, log *logger.Logger) {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn(func() {
		listenAddr := net.JoinHostPort("localhost", port)
		log.Infof("Profile server listening on %s", listenAddr)
		profileRedirect := http.RedirectHandler("/debug/pprof", http.StatusSeeOther)
		http.Handle("/", profileRedirect)
		log.Error(http.ListenAndServe(listenAddr, nil))
	})
}
