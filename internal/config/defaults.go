package config

const (
	defaultConfigPath        = "~/.config/shodan/config.toml"
	defaultDataDir           = "~/.local/share/shodan"
	defaultCanonPath         = "~/.config/shodan/canon.toml"
	defaultLogDir            = "~/.local/share/shodan/logs"
	defaultOMDbBaseURL       = "https://www.omdbapi.com"
	defaultOMDbTimeout       = 10
	defaultResonanceCap      = 9.8
	defaultPeerTolerance     = 0.2
	defaultIngestWorkers     = 4
	defaultArkOperator       = "Operator"
	defaultArkVersion        = "2.0"
	defaultArkProtocol       = "Kim Protocol"
	defaultArkExportFileName = "canon.json"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"

	// LateReleaseNeutral applies no adjustment to releases after 2020.
	LateReleaseNeutral = "neutral"
	// LateReleasePenalty subtracts 1.0 from releases after 2020.
	LateReleasePenalty = "penalty"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			CanonPath: defaultCanonPath,
			LogDir:    defaultLogDir,
		},
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			TimeoutSeconds: defaultOMDbTimeout,
		},
		Weighting: Weighting{
			LateReleasePolicy: LateReleaseNeutral,
			ResonanceCap:      defaultResonanceCap,
			PeerTolerance:     defaultPeerTolerance,
			IngestWorkers:     defaultIngestWorkers,
		},
		Ark: Ark{
			Operator: defaultArkOperator,
			Version:  defaultArkVersion,
			Protocol: defaultArkProtocol,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
