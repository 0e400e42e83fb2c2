// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripfix/tripfix/services/claims/handlers"
	"github.com/tripfix/tripfix/services/claims/middleware"
	"github.com/tripfix/tripfix/services/claims/storage"
	"github.com/tripfix/tripfix/services/risk"
)

// SetupRoutes registers the claims service routes. The store may be nil
// when persistence is disabled; the assessment CRUD routes are then not
// registered.
func SetupRoutes(router *gin.Engine, engine *risk.Engine, scorer *risk.Scorer,
	store *storage.AssessmentStore, rateCfg middleware.RateLimitConfig) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.RateLimit(rateCfg))
	{
		v1.POST("/assess", handlers.HandleAssess(engine, store))
		v1.POST("/score", handlers.HandleScore(scorer))

		if store != nil {
			assessments := v1.Group("/assessments")
			{
				assessments.GET("", handlers.ListAssessments(store))
				assessments.GET("/:assessmentId", handlers.GetAssessment(store))
			}
		}
	}
}
