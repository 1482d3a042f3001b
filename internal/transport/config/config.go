package config

import "time"

type Config struct {
	BaseAddr string
	Timeout  time.Duration
}
