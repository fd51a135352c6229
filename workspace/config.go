package workspace

// Config for the wsaver command line
type Config struct {
	DataPath       string `toml:"data_path"`
	AllowCallables bool   `toml:"allow_callables"`
	Verbose        bool   `toml:"verbose"`
}
