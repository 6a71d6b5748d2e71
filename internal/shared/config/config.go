package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"ride-tracker/internal/shared/models"
)

// LoadConfig reads a flat two-level YAML-ish config file. Values of the form
// ${ENV_VAR:-default} are expanded from the environment.
func LoadConfig(filename string) (*models.Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := defaults()
	var section string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.Contains(line, ":") {
			continue
		}

		if strings.HasSuffix(line, ":") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if strings.HasPrefix(val, "${") {
			inside := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			parts := strings.SplitN(inside, ":-", 2)

			envVar := parts[0]
			defVal := ""
			if len(parts) == 2 {
				defVal = parts[1]
			}

			if v, ok := os.LookupEnv(envVar); ok {
				val = v
			} else {
				val = defVal
			}
		}

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = val
			case "port":
				cfg.Database.Port = val
			case "user":
				cfg.Database.User = val
			case "password":
				cfg.Database.Password = val
			case "database":
				cfg.Database.Database = val
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.RabbitMQ.Host = val
			case "port":
				cfg.RabbitMQ.Port = val
			case "user":
				cfg.RabbitMQ.User = val
			case "password":
				cfg.RabbitMQ.Password = val
			case "enabled":
				cfg.RabbitMQ.Enabled = val == "true"
			}
		case "http":
			if key == "port" {
				cfg.HTTP.Port = val
			}
		case "auth":
			switch key {
			case "jwt_secret":
				cfg.Auth.JWTSecret = val
			case "token_ttl_minutes":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					cfg.Auth.TokenTTLMinutes = n
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *models.Config {
	return &models.Config{
		HTTP: models.HTTPConfig{Port: "3000"},
		Auth: models.AuthConfig{TokenTTLMinutes: 60},
	}
}
