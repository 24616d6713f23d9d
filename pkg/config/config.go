package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App    AppConfig
	Mail   MailConfig
	Ledger LedgerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// MailConfig configuración del buzón IMAP del que llegan los comprobantes.
type MailConfig struct {
	Server        string
	Port          int
	Account       string
	Password      string
	Mailbox       string
	CheckInterval time.Duration // intervalo del ciclo de sondeo
}

// Addr devuelve la dirección de conexión (host:puerto).
func (c MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

// LedgerConfig configuración del libro de facturas XLSX.
type LedgerConfig struct {
	Path             string // XLS_FILE
	Sheet            string
	Layout           string // "plano" | "secciones"
	IncluirDescuento bool   // amplía la lista de campos de detalle con <descuento>
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde un archivo .env en el directorio de trabajo). Las env vars tienen
// prioridad. Nombres esperados: EMAIL_ACCOUNT, PASSWORD, XLS_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env (mismas claves que el entorno)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "mailbill"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Mail: MailConfig{
			Server:        getString(v, "IMAP_SERVER", "imap.gmail.com"),
			Port:          getInt(v, "IMAP_PORT", 993),
			Account:       getString(v, "EMAIL_ACCOUNT", ""),
			Password:      getString(v, "PASSWORD", ""),
			Mailbox:       getString(v, "IMAP_MAILBOX", "INBOX"),
			CheckInterval: time.Duration(getInt(v, "CHECK_INTERVAL", 10)) * time.Second,
		},
		Ledger: LedgerConfig{
			Path:             getString(v, "XLS_FILE", "facturas.xlsx"),
			Sheet:            getString(v, "LEDGER_SHEET", "Facturas"),
			Layout:           getString(v, "LEDGER_LAYOUT", "plano"),
			IncluirDescuento: getBool(v, "LEDGER_INCLUDE_DESCUENTO", false),
		},
	}

	return cfg, nil
}

// ValidateWatch verifica los campos obligatorios para el modo watch.
func (c *Config) ValidateWatch() error {
	if c.Mail.Account == "" {
		return fmt.Errorf("config: EMAIL_ACCOUNT es obligatorio")
	}
	if c.Mail.Password == "" {
		return fmt.Errorf("config: PASSWORD es obligatorio")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("config: XLS_FILE es obligatorio")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
