package main

import (
	"context"

	"github.com/telarmoda/shipping/internal/config"
	"github.com/telarmoda/shipping/internal/engine"
	"github.com/telarmoda/shipping/internal/telemetry"
	"github.com/telarmoda/shipping/pkg/postal"
	"github.com/telarmoda/shipping/pkg/quoter/courier"
	"github.com/telarmoda/shipping/pkg/quoter/courier/ivoy"
	"github.com/telarmoda/shipping/pkg/quoter/courier/minutos99"
	"github.com/telarmoda/shipping/pkg/quoter/skydropx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initEngine(cfg *config.Config, logger *otelzap.Logger) (*engine.Engine, engine.CartSource) {
	metrics := telemetry.NewMetrics()

	origin := postal.Address{
		CountryCode:    cfg.OriginCountry,
		CountryName:    postal.GuessFor(cfg.OriginCountry).Name,
		Region:         cfg.OriginRegion,
		City:           cfg.OriginCity,
		District:       cfg.OriginDistrict,
		PostalCode:     cfg.OriginPostalCode,
		Latitude:       cfg.OriginLatitude,
		Longitude:      cfg.OriginLongitude,
		HasCoordinates: cfg.OriginLatitude != 0 || cfg.OriginLongitude != 0,
	}

	resolver := initResolver(cfg, logger, metrics)

	national := skydropx.New(skydropx.Config{
		ClientID:     cfg.SkydropxClientID,
		ClientSecret: cfg.SkydropxClientSecret,
		Scope:        cfg.SkydropxScope,
		BaseURL:      cfg.SkydropxBaseURL,
		UseMock:      cfg.SkydropxUseMock,
	}, logger, nil)

	eng := engine.New(engine.Config{
		Origin:                origin,
		Zones:                 engine.ParseMetroZones(cfg.MetroZones),
		PostalTimeout:         cfg.PostalLookupTimeout,
		NationalTimeout:       cfg.NationalTimeout,
		LocalTimeout:          cfg.LocalTimeout,
		FastDeliveryThreshold: cfg.FastDeliveryThreshold,
	}, resolver, national, initCourierRegistry(cfg, logger), logger, metrics)

	return eng, engine.NewStaticCartSource()
}

func initResolver(cfg *config.Config, logger *otelzap.Logger, metrics *telemetry.Metrics) *postal.Resolver {
	detector := postal.NewDetector(cfg.PostalBiasCountry)
	tiers := []postal.Tier{
		postal.NewDatasetTier(cfg.PostalDatasetPath, cfg.OriginCountry, logger),
		postal.NewGeoLookupTier(cfg.PostalLookupBaseURL, cfg.PostalLookupTimeout, logger),
		postal.NewBrazilTier(cfg.ViaCEPBaseURL, cfg.PostalLookupTimeout, logger),
		postal.NewManualTier(),
		postal.NewGenericTier(),
	}
	return postal.NewResolver(detector, tiers, logger, metrics.RecordTierHit)
}

func initCourierRegistry(cfg *config.Config, logger *otelzap.Logger) *courier.Registry {
	registry := courier.NewRegistry()

	// A provider without its credential is skipped, not errored.
	if cfg.IvoyEnabled && (cfg.IvoyToken != "" || cfg.IvoyUseMock) {
		registry.Register(ivoy.New(ivoy.Config{
			Token:       cfg.IvoyToken,
			BaseURL:     cfg.IvoyBaseURL,
			MaxRadiusKm: cfg.IvoyMaxRadiusKm,
			UseMock:     cfg.IvoyUseMock,
		}, logger, nil))
	}

	if cfg.Minutos99Enabled && (cfg.Minutos99APIKey != "" || cfg.Minutos99UseMock) {
		registry.Register(minutos99.New(minutos99.Config{
			APIKey:      cfg.Minutos99APIKey,
			BaseURL:     cfg.Minutos99BaseURL,
			MaxRadiusKm: cfg.Minutos99MaxRadiusKm,
			UseMock:     cfg.Minutos99UseMock,
		}, logger, nil))
	}

	return registry
}
