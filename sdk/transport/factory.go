package transport

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Protocol ProtocolType
	Timeout  time.Duration `validate:"gte=0"`
}

func NewTransport(config Config) (Transport, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}

	switch config.Protocol {
	case HTTP1, "":
		return NewHTTP1Transport(config.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", config.Protocol)
	}
}
