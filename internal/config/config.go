package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

const (
	TransportSerial = "serial"
	TransportMQTT   = "mqtt"
	TransportStdin  = "stdin"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
		LogFile  string `mapstructure:"log_file"`
	} `mapstructure:"app"`

	Transport struct {
		Kind   string
		Format string
	} `mapstructure:"transport"`

	Serial struct {
		Port string
		Baud int
	} `mapstructure:"serial"`

	MQTT struct {
		Broker   string
		Topic    string
		ClientID string `mapstructure:"client_id"`
	} `mapstructure:"mqtt"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		Timeout     int
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Kafka struct {
		Enabled bool
		Brokers []string
		Topic   string
	} `mapstructure:"kafka"`

	Panel struct {
		Refresh time.Duration
	} `mapstructure:"panel"`

	Hooks struct {
		QueueSize int `mapstructure:"queue_size"`
	} `mapstructure:"hooks"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Asia/Baku")
	v.SetDefault("app.log_file", "")
	v.SetDefault("transport.kind", TransportSerial)
	v.SetDefault("transport.format", string(meter.FormatAuto))
	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baud", 9600)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "smartcounter/lines")
	v.SetDefault("mqtt.client_id", "smartcounter")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("telegram.timeout", 30)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "smartcounter.settlements")
	v.SetDefault("panel.refresh", 200*time.Millisecond)
	v.SetDefault("hooks.queue_size", 64)
}

// Load читает .env (если есть), затем YAML, затем переменные APP_* (APP_TELEGRAM_TOKEN и т.п.).
// Пустой path — только дефолты и окружение.
func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Transport.Kind {
	case TransportSerial:
		if strings.TrimSpace(c.Serial.Port) == "" {
			errs = append(errs, errors.New("serial.port must not be empty"))
		}
		if c.Serial.Baud <= 0 {
			errs = append(errs, fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud))
		}
	case TransportMQTT:
		if strings.TrimSpace(c.MQTT.Broker) == "" || strings.TrimSpace(c.MQTT.Topic) == "" {
			errs = append(errs, errors.New("mqtt.broker and mqtt.topic are required for mqtt transport"))
		}
	case TransportStdin:
	default:
		errs = append(errs, fmt.Errorf("unknown transport.kind %q", c.Transport.Kind))
	}

	if _, err := meter.ParseFormat(c.Transport.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers required when kafka is enabled"))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("app.timezone: %w", err))
	}
	return errors.Join(errs...)
}

// Location — часовой пояс для вывода времени оплаты.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
