package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tts-batch-api/application/services"
	"tts-batch-api/config"
	"tts-batch-api/infrastructure/adapters"
	"tts-batch-api/infrastructure/gin_interface/controllers"
	"tts-batch-api/middleware"
)

const workerPoolSize = 32

func main() {
	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	cacheConfig, err := config.GetCacheConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get cache config")
	}

	modelsConfig, err := config.GetModelsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get models config")
	}

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(workerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cacheConfig.RedisAddr(),
		Password: cacheConfig.RedisPassword,
	})
	defer redisClient.Close()

	if cacheConfig.Enabled {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
			zeroLogger.WarnWithFields("redis unreachable at startup, cache lookups will degrade to misses",
				map[string]interface{}{
					"addr":  cacheConfig.RedisAddr(),
					"error": pingErr.Error(),
				})
		}
		cancel()
	} else {
		zeroLogger.Info("Cache disabled via ENABLE_CACHE=false")
	}

	audioCache := adapters.NewRedisAudioCache(redisClient, cacheConfig, zeroLogger)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	engineLoader := adapters.NewPiperEngineLoader(modelsConfig, contentFetcher, zeroLogger)

	modelRegistry := services.NewModelRegistry(modelsConfig, engineLoader, workerPool, zeroLogger)
	if err := modelRegistry.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load voice models")
	}
	defer modelRegistry.Clear()

	orchestrator := services.NewSynthesisOrchestrator(modelRegistry, audioCache, zeroLogger)

	synthesizeController := controllers.NewSynthesizeController(zeroLogger, orchestrator)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler := middleware.NewAuthHandler(authConfig.AllowedUserToken)
	router.Use(authHandler.AuthMiddleware())

	synthesizeController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
