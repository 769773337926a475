package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8089
	}
	if cfg.Gazetteer.Path == "" {
		cfg.Gazetteer.Path = "/usr/local/var/platoo/data/gazetteer.yaml"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/platoo/data/db/places.db"
	}
	if cfg.Matching.MaxDistance == 0 {
		cfg.Matching.MaxDistance = 2
	}
	if cfg.Matching.SequenceWeight == 0 {
		cfg.Matching.SequenceWeight = 0.7
	}
	if cfg.Matching.ContainmentWeight == 0 {
		cfg.Matching.ContainmentWeight = 0.3
	}
	if cfg.Matching.LongThreshold == 0 {
		cfg.Matching.LongThreshold = 0.75
	}
	if cfg.Matching.ShortThreshold == 0 {
		cfg.Matching.ShortThreshold = 0.80
	}
	if cfg.Matching.LongTokenRunes == 0 {
		cfg.Matching.LongTokenRunes = 8
	}
	if cfg.Matching.GuardLead == 0 {
		cfg.Matching.GuardLead = 0.15
	}
	if cfg.Matching.PopularityWeight == 0 {
		cfg.Matching.PopularityWeight = 0.25
	}
	if cfg.Suggest.DebounceMs == 0 {
		cfg.Suggest.DebounceMs = 300
	}
	if cfg.Suggest.RemoteTimeoutMs == 0 {
		cfg.Suggest.RemoteTimeoutMs = 3500
	}
	if cfg.Suggest.DefaultLimit == 0 {
		cfg.Suggest.DefaultLimit = 6
	}
	if cfg.Suggest.MaxLimit == 0 {
		cfg.Suggest.MaxLimit = 20
	}
	if cfg.Remote.TimeoutMs == 0 {
		cfg.Remote.TimeoutMs = 3500
	}
}
