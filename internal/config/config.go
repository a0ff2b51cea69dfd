package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	QueueModeMemory   = "memory"
	QueueModeRabbitMQ = "rabbitmq"

	StorageModeMemory   = "memory"
	StorageModePostgres = "postgres"

	NotifierModeLog  = "log"
	NotifierModeSMTP = "smtp"
)

type Config struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Queue      `yaml:"queue"`
	Storage    `yaml:"storage"`
	Redis      `yaml:"redis"`
	Notifier   `yaml:"notifier"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Queue struct {
	Mode     string `yaml:"mode" env-default:"memory"`
	RabbitMQ `yaml:"rabbitmq"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL"`
	QueueName string `yaml:"queue_name" env-default:"bookings_queue"`
}

type Storage struct {
	Mode     string `yaml:"mode" env-default:"memory"`
	Postgres `yaml:"postgres"`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"postgres"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

// Redis включает быструю проверку занятости слота перед записью в базу.
type Redis struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	Host     string `yaml:"host" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Notifier struct {
	Mode         string `yaml:"mode" env-default:"log"`
	BarberDomain string `yaml:"barber_domain" env-default:"barbearia.com"`
	Email        `yaml:"email"`
}

type Email struct {
	Host     string `yaml:"host" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
}

func MustLoad(configPath string) *Config {
	// проверка существования файла
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", configPath)
	}

	return &cfg
}
