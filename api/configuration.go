package api

import (
	"time"
)

type Configuration struct {
	Env              string
	AppName          string
	AppVersion       string
	Port             string
	CorsAllowOrigins []string
	MaxUploadSizeMb  int64
	DefaultTimeout   time.Duration
}
