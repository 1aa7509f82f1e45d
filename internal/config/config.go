package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Origin warehouse. Everything ships from one fixed address.
	OriginCountry    string  `envconfig:"ORIGIN_COUNTRY" default:"MX"`
	OriginPostalCode string  `envconfig:"ORIGIN_POSTAL_CODE" default:"06600"`
	OriginRegion     string  `envconfig:"ORIGIN_REGION" default:"Ciudad de México"`
	OriginCity       string  `envconfig:"ORIGIN_CITY" default:"Cuauhtémoc"`
	OriginDistrict   string  `envconfig:"ORIGIN_DISTRICT" default:"Juárez"`
	OriginLatitude   float64 `envconfig:"ORIGIN_LATITUDE" default:"19.4270"`
	OriginLongitude  float64 `envconfig:"ORIGIN_LONGITUDE" default:"-99.1677"`

	// Postal resolution
	PostalBiasCountry   string        `envconfig:"POSTAL_BIAS_COUNTRY" default:"MX"`
	PostalDatasetPath   string        `envconfig:"POSTAL_DATASET_PATH"`
	PostalLookupBaseURL string        `envconfig:"POSTAL_LOOKUP_BASE_URL" default:"https://api.zippopotam.us"`
	ViaCEPBaseURL       string        `envconfig:"VIACEP_BASE_URL" default:"https://viacep.com.br"`
	PostalLookupTimeout time.Duration `envconfig:"POSTAL_LOOKUP_TIMEOUT" default:"10s"`

	// Metro zones (zone=prefix,prefix;zone=...) against which local
	// same-day eligibility is decided.
	MetroZones string `envconfig:"METRO_ZONES" default:"cdmx=01,02,03,04,05,06,07,08,09,10,11,12,13,14,15,16;gdl=44,45;mty=64,66"`

	// Quoting behavior
	NationalTimeout       time.Duration `envconfig:"NATIONAL_QUOTE_TIMEOUT" default:"30s"`
	LocalTimeout          time.Duration `envconfig:"LOCAL_QUOTE_TIMEOUT" default:"10s"`
	FastDeliveryThreshold time.Duration `envconfig:"FAST_DELIVERY_THRESHOLD" default:"3h"`

	// Skydropx (national rate provider)
	SkydropxClientID     string `envconfig:"SKYDROPX_CLIENT_ID"`
	SkydropxClientSecret string `envconfig:"SKYDROPX_CLIENT_SECRET"`
	SkydropxScope        string `envconfig:"SKYDROPX_SCOPE" default:"default orders.create"`
	SkydropxBaseURL      string `envconfig:"SKYDROPX_BASE_URL" default:"https://api.skydropx.com/v1"`
	SkydropxUseMock      bool   `envconfig:"SKYDROPX_USE_MOCK" default:"false"`

	// iVoy (local courier)
	IvoyToken       string  `envconfig:"IVOY_TOKEN"`
	IvoyBaseURL     string  `envconfig:"IVOY_BASE_URL" default:"https://api.ivoy.mx/api"`
	IvoyMaxRadiusKm float64 `envconfig:"IVOY_MAX_RADIUS_KM" default:"35"`
	IvoyEnabled     bool    `envconfig:"IVOY_ENABLED" default:"true"`
	IvoyUseMock     bool    `envconfig:"IVOY_USE_MOCK" default:"false"`

	// 99minutos (local courier)
	Minutos99APIKey      string  `envconfig:"MINUTOS99_API_KEY"`
	Minutos99BaseURL     string  `envconfig:"MINUTOS99_BASE_URL" default:"https://delivery.99minutos.com"`
	Minutos99MaxRadiusKm float64 `envconfig:"MINUTOS99_MAX_RADIUS_KM" default:"50"`
	Minutos99Enabled     bool    `envconfig:"MINUTOS99_ENABLED" default:"true"`
	Minutos99UseMock     bool    `envconfig:"MINUTOS99_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"telarmoda-shipping"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("origin.country", c.OriginCountry),
		attribute.Bool("ivoy.enabled", c.IvoyEnabled),
		attribute.Bool("minutos99.enabled", c.Minutos99Enabled),
	}
}
