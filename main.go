package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dedupbot/api"
	"dedupbot/dedup"
	"dedupbot/kafka"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	svc := dedup.NewService(configFromEnv())

	// Optional Kafka ingestion: consume content items and run them through
	// the duplicate check as they arrive.
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		consumer, err := startKafkaIngest(svc, strings.Split(brokers, ","))
		if err != nil {
			log.Fatalf("Failed to start Kafka consumer: %v", err)
		}
		defer consumer.Close()
	}

	r := api.NewRouter(svc)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  POST   /api/dedup/check")
	log.Println("  POST   /api/dedup/batch")
	log.Println("  POST   /api/dedup/export")
	log.Println("  GET    /api/dedup/stats")
	log.Println("  GET    /api/dedup/count")
	log.Println("  DELETE /api/dedup/clear")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// startKafkaIngest wires a consumer that feeds incoming content items into
// the deduplication service. Runs until the process receives a signal.
func startKafkaIngest(svc *dedup.Service, brokers []string) (*kafka.Consumer, error) {
	topic := getEnvOrDefault("KAFKA_TOPIC", "content.items")
	groupID := getEnvOrDefault("KAFKA_GROUP_ID", "dedupbot")

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		Handler: &itemHandler{svc: svc},
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil {
		cancel()
		return nil, err
	}
	return consumer, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
