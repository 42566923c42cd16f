package config

// Configfile represents the structure of the modcache.yaml configuration file.
type Configfile struct {
	CacheDir   string  `yaml:"cache_dir"`
	GasLimit   *uint64 `yaml:"gas_limit"`
	StackLimit string  `yaml:"stack_limit"`
	LogFormat  string  `yaml:"log_format"`
}
