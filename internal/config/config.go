// Package config carga la configuración del servicio desde variables de
// entorno, con soporte para archivos .env en desarrollo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config contiene toda la configuración del servicio
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Email    EmailConfig
	Report   ReportConfig
}

// ServerConfig configuración del servidor HTTP
type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

// DatabaseConfig configuración de la base de datos Postgres
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN arma la cadena de conexión para el driver de Postgres.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// EmailConfig configuración del envío de correos SMTP
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ReportConfig configuración de la generación de informes
type ReportConfig struct {
	LogoURL string
}

// Load carga la configuración desde variables de entorno
func Load() (*Config, error) {
	// Cargar archivo .env si existe
	godotenv.Load()

	emailPort := 587
	if raw := os.Getenv("EMAIL_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			emailPort = parsed
		}
	}

	config := &Config{
		Server: ServerConfig{
			Host:        getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvOrDefault("SERVER_PORT", "3000"),
			CORSOrigins: parseOrigins(getEnvOrDefault("CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "diagnostico_pdp"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     emailPort,
			Username: os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     getEnvOrDefault("EMAIL_FROM", "Diagnóstico PDP <no-reply@agencia43.com>"),
		},
		Report: ReportConfig{
			LogoURL: os.Getenv("REPORT_LOGO_URL"),
		},
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseOrigins parsea la lista de orígenes permitidos separados por comas
func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
