package cache

import (
	"context"
	"time"
)

// NoopCache se usa cuando REDIS_ADDR está vacío: nunca hay acierto.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
