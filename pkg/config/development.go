package config

func loadDevelopmentConfig(cfg *Config) {
	cfg.DatabaseDebug = true
	cfg.DatabaseFilePath = "./tmp/data.sqlite"
	cfg.ServerHost = "127.0.0.1"
	cfg.JWTSecret = "development-secret-do-not-use-in-production"
	cfg.SuperuserPassword = "admin"
}
