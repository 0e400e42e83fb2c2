// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripfix/tripfix/services/claims/middleware"
	"github.com/tripfix/tripfix/services/claims/observability"
	"github.com/tripfix/tripfix/services/claims/routes"
	"github.com/tripfix/tripfix/services/claims/storage"
	badgerstore "github.com/tripfix/tripfix/services/claims/storage/badger"
	"github.com/tripfix/tripfix/services/risk"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "tripfix-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("claims-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	port := os.Getenv("CLAIMS_PORT")
	if port == "" {
		port = "12310"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	observability.InitMetrics()

	var store *storage.AssessmentStore
	dbPath := os.Getenv("CLAIMS_DB_PATH")
	if dbPath != "" {
		cfg := badgerstore.DefaultConfig()
		cfg.Path = dbPath
		cfg.Logger = logger
		db, err := badgerstore.Open(cfg)
		if err != nil {
			log.Fatalf("FATAL: Could not open the assessment database: %v", err)
		}
		defer db.Close()

		store, err = storage.NewAssessmentStore(db)
		if err != nil {
			log.Fatalf("FATAL: Could not initialize the assessment store: %v", err)
		}
		slog.Info("assessment persistence enabled", "path", dbPath)
	} else {
		slog.Info("CLAIMS_DB_PATH not set. Running stateless (assessment routes disabled).")
	}

	engine := risk.NewEngine()
	scorer := risk.NewScorer()

	router := gin.Default()
	router.Use(otelgin.Middleware("claims-service"))

	routes.SetupRoutes(router, engine, scorer, store, middleware.DefaultRateLimitConfig())
	log.Println("started up the container")

	log.Println("Starting the claims server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
