package httptransport

import "expvar"

var (
	metricBattleQueries     = expvar.NewInt("battle_query_total")
	metricBattleQueryErrors = expvar.NewInt("battle_query_errors_total")
)
