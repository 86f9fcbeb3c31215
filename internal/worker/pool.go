package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueEmail = "jobs:email"

// JobReporteCierre is the job type for the end-of-shift email report.
const JobReporteCierre = "reporte_cierre"

// maxAttempts before a failed job lands in the DLQ.
const maxAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// ReporteCierrePayload carries the shift closing summary emailed to the
// administrator. All amounts are preformatted strings so the worker does not
// depend on decimal handling.
type ReporteCierrePayload struct {
	TurnoID        string `json:"turno_id"`
	Cajero         string `json:"cajero"`
	MontoInicial   string `json:"monto_inicial"`
	MontoEfectivo  string `json:"monto_efectivo"`
	MontoTarjeta   string `json:"monto_tarjeta"`
	MontoTotal     string `json:"monto_total"`
	Facturas       int64  `json:"facturas"`
	TotalFacturado string `json:"total_facturado"`
	FechaCierre    string `json:"fecha_cierre"`
}

// EnqueueReporteCierre pushes a shift closing report email job to Redis.
func (d *Dispatcher) EnqueueReporteCierre(ctx context.Context, payload ReporteCierrePayload) error {
	return d.enqueue(ctx, QueueEmail, JobReporteCierre, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one job payload. A returned error triggers a retry and,
// past maxAttempts, the DLQ.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// StartWorkerPool launches numWorkers goroutines consuming the email queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], handlers)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, handlers map[string]Handler) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h, ok := handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Msg("no handler registered for job type")
		return
	}

	if err := h.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, marshalErr := json.Marshal(job)
		if marshalErr != nil {
			log.Error().Err(marshalErr).Msg("failed to re-enqueue job")
			return
		}
		log.Warn().Str("type", job.Type).Int("attempt", job.Attempts).Err(err).Msg("job failed, re-enqueued")
		_ = rdb.LPush(ctx, queue, encoded).Err()
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
