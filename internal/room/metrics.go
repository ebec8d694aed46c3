package room

import "expvar"

var (
	metricRoomsCreatedTotal = expvar.NewInt("rooms_created_total")
	metricRoomsSweptTotal   = expvar.NewInt("rooms_swept_total")
	metricRoomsActive       = expvar.NewInt("rooms_active")
	metricPlayersOnline     = expvar.NewInt("players_online")

	metricSeatChangesTotal     = expvar.NewInt("seat_changes_total")
	metricBattlesStartedTotal  = expvar.NewInt("battles_started_total")
	metricBattlesFinishedTotal = expvar.NewInt("battles_finished_total")
	metricMovesTotal           = expvar.NewInt("moves_total")
	metricChatMessagesTotal    = expvar.NewInt("chat_messages_total")
	metricBroadcastDropsTotal  = expvar.NewInt("broadcast_drops_total")
)
