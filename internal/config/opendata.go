package config

import "time"

type OpenData struct {
	SchoolListURL  string        `env:"OPENDATA_SCHOOL_LIST_URL" envDefault:"https://data.cityofnewyork.us/resource/s3k6-pzi2.json" validate:"required,url"`
	SATDetailURL   string        `env:"OPENDATA_SAT_DETAIL_URL" envDefault:"https://data.cityofnewyork.us/resource/f9bf-2cp4.json" validate:"required,url"`
	AppToken       string        `env:"OPENDATA_APP_TOKEN" json:"-"`
	Timeout        time.Duration `env:"OPENDATA_TIMEOUT" envDefault:"15s"`
	LogFieldMaxLen int           `env:"OPENDATA_LOG_FIELD_MAX_LEN" envDefault:"4096" validate:"gte=0"`
	LogBodies      bool          `env:"OPENDATA_LOG_BODIES" envDefault:"true"`
}

type Pagination struct {
	Limit       int           `env:"PAGE_LIMIT" envDefault:"20" validate:"gt=0"`
	SATCacheTTL time.Duration `env:"SAT_CACHE_TTL" envDefault:"10m" validate:"gt=0"`
	// RefreshInterval of zero disables the scheduled reload.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"0s" validate:"gte=0"`
	Dedup           bool          `env:"PAGE_DEDUP" envDefault:"true"`
}
