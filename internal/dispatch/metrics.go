package dispatch

import "expvar"

var (
	metricConnectionsTotal   = expvar.NewInt("connections_total")
	metricConnectionsActive  = expvar.NewInt("connections_active")
	metricOutboundDropsTotal = expvar.NewInt("outbound_drops_total")
	metricDispatchPanics     = expvar.NewInt("dispatch_panics_total")
	metricCommandsTotal      = expvar.NewMap("commands_total")
)
