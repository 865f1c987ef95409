package config

func loadProductionConfig(cfg *Config) {
	cfg.DatabaseFilePath = "/data/mylibrary.sqlite"
	cfg.ServerHost = "0.0.0.0"
}
