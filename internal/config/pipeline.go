package config

import "time"

type Pipeline struct {
	StageTimeout time.Duration `env:"PIPELINE_STAGE_TIMEOUT" envDefault:"15s"`
}
