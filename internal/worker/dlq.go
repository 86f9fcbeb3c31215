package worker

// Jobs that burn through their retries land in a per-queue Redis list
// ("dlq:" + queue). A closure report lost to SMTP trouble stays there with
// its payload intact so it can be replayed by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type dlqEntry struct {
	Cola     string          `json:"cola"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	Fecha    string          `json:"fecha"` // RFC 3339, UTC
	Intentos int             `json:"intentos"`
}

// SendToDLQ parks an exhausted job. Errors here are only logged; the worker
// loop must keep draining the queue either way.
func SendToDLQ(ctx context.Context, rdb *redis.Client, cola, tipo string, payload json.RawMessage, motivo string, intentos int) {
	entry := dlqEntry{
		Cola:     cola,
		Tipo:     tipo,
		Payload:  payload,
		Motivo:   motivo,
		Fecha:    time.Now().UTC().Format(time.RFC3339),
		Intentos: intentos,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: marshal")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+cola, data).Err(); err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("dlq: lpush")
		return
	}

	log.Warn().
		Str("cola", cola).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("dlq: trabajo descartado tras agotar reintentos")
}
