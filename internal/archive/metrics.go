package archive

import "expvar"

var (
	metricArchiveQueued   = expvar.NewInt("archive_queued_total")
	metricArchiveWritten  = expvar.NewInt("archive_written_total")
	metricArchiveFailed   = expvar.NewInt("archive_failed_total")
	metricArchiveDropped  = expvar.NewInt("archive_dropped_total")
	metricArchiveQueueLen = expvar.NewInt("archive_queue_len")
)
