package mdpage

// ConvertOption configures Convert.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	allBold    bool
	tableGuard bool
}

func newConvertConfig(opts []ConvertOption) convertConfig {
	cfg := convertConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithAllBold converts every **bold** pair instead of only the first one.
func WithAllBold(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.allBold = enabled
	}
}

// WithTableGuard skips the table pass for documents without any '|'.
func WithTableGuard(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.tableGuard = enabled
	}
}
