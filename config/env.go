package config

import (
	"fmt"
	"os"
)

type AppEnv struct {
	LogLvl string

	PgHost     string
	PgPort     string
	PgUser     string
	PgPassword string
	PgDbName   string
	SSLMode    string
	TimeZone   string

	AdminLogin    string
	AdminPassword string

	OmAppLink string
}

// GetEnvironment reads the server environment. Postgres settings are only
// required when the postgres driver is used.
func GetEnvironment(driver string) (env AppEnv, err error) {
	env = AppEnv{
		LogLvl:        getEnv("LOG_LEVEL", "debug"),
		PgHost:        getEnv("POSTGRES_HOST", ""),
		PgPort:        getEnv("POSTGRES_PORT", ""),
		PgUser:        getEnv("POSTGRES_USER", ""),
		PgPassword:    getEnv("POSTGRES_PASSWORD", ""),
		PgDbName:      getEnv("POSTGRES_DB", ""),
		SSLMode:       getEnv("POSTGRES_SSL_MODE", "disable"),
		TimeZone:      getEnv("POSTGRES_TIMEZONE", "Europe/Moscow"),
		AdminLogin:    getEnv("PIM_ADMIN_LOGIN", "admin"),
		AdminPassword: getEnv("PIM_ADMIN_PASSWORD", ""),
		OmAppLink:     getEnv("OM_APP_LINK", ""),
	}

	if driver == "postgres" && (env.PgHost == "" || env.PgPort == "" || env.PgUser == "" ||
		env.PgPassword == "" || env.PgDbName == "") {
		return env, fmt.Errorf("incorrect environment params: POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DB are required")
	}

	if env.AdminPassword == "" {
		return env, fmt.Errorf("incorrect environment params: PIM_ADMIN_PASSWORD is required")
	}

	return env, nil
}

type ConsoleEnv struct {
	LogLvl   string
	ApiURL   string
	Login    string
	Password string
}

// GetConsoleEnvironment reads the console environment. Every value may be
// overridden by a command line flag.
func GetConsoleEnvironment() ConsoleEnv {
	return ConsoleEnv{
		LogLvl:   getEnv("LOG_LEVEL", "warn"),
		ApiURL:   getEnv("PIM_API_URL", "http://localhost:8080"),
		Login:    getEnv("PIM_LOGIN", ""),
		Password: getEnv("PIM_PASSWORD", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}
