package archive

import (
	"context"
	"time"

	"gobang-server/internal/store"

	"github.com/rs/zerolog/log"
)

const (
	DefaultQueueSize = 128
	writeTimeout     = 5 * time.Second
	drainTimeout     = 10 * time.Second
)

type BattleWriter interface {
	InsertBattle(ctx context.Context, rec store.BattleRecord) error
}

type Options struct {
	QueueSize int
	RetryMax  int
	RetryBase time.Duration
}

// Worker persists finished battles off the game path. Record never blocks;
// Run does the writes.
type Worker struct {
	writer BattleWriter
	opts   Options
	queue  chan store.BattleRecord
}

func NewWorker(writer BattleWriter, opts Options) *Worker {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 200 * time.Millisecond
	}
	return &Worker{writer: writer, opts: opts, queue: make(chan store.BattleRecord, opts.QueueSize)}
}

// Record queues rec for writing, dropping it when the queue is full.
func (w *Worker) Record(rec store.BattleRecord) {
	select {
	case w.queue <- rec:
		metricArchiveQueued.Add(1)
		metricArchiveQueueLen.Set(int64(len(w.queue)))
	default:
		metricArchiveDropped.Add(1)
		log.Warn().Str("battle_id", rec.ID).Str("room_id", rec.RoomID).Msg("archive_queue_full")
	}
}

// Run writes queued battles until ctx is done, then flushes what is left
// with a bounded timeout.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case rec := <-w.queue:
			metricArchiveQueueLen.Set(int64(len(w.queue)))
			w.write(ctx, rec)
		}
	}
}

func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case rec := <-w.queue:
			w.write(ctx, rec)
		default:
			return
		}
	}
}

func (w *Worker) write(ctx context.Context, rec store.BattleRecord) {
	for attempt := 0; ; attempt++ {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := w.writer.InsertBattle(wctx, rec)
		cancel()
		if err == nil {
			metricArchiveWritten.Add(1)
			log.Debug().Str("battle_id", rec.ID).Int("moves", len(rec.Moves)).Msg("battle_archived")
			return
		}
		metricArchiveFailed.Add(1)
		if attempt >= w.opts.RetryMax || ctx.Err() != nil {
			log.Error().Err(err).Str("battle_id", rec.ID).Int("attempts", attempt+1).Msg("archive_write_failed")
			return
		}
		delay := w.opts.RetryBase * time.Duration(1<<attempt)
		select {
		case <-ctx.Done():
			log.Error().Err(err).Str("battle_id", rec.ID).Msg("archive_write_abandoned")
			return
		case <-time.After(delay):
		}
	}
}
