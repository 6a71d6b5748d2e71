package models

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Enabled  bool
}

type HTTPConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
}

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
}
