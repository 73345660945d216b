package httpx

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates dumped request and response fields. Zero
// means no limit.
func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithDumpBodies controls whether bodies are included in the dumps. Status
// lines and headers are always logged.
func WithDumpBodies(enabled bool) Option {
	return func(rt *LoggingRoundTripper) {
		rt.dumpBodies = enabled
	}
}
