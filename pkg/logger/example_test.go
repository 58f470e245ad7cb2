/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger_test

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scottpeterman/rapidcmdb/pkg/logger"
)

func ExampleNew() {
	log, err := logger.New(&logger.Config{Level: "debug", Debug: true, Output: "stdout"})
	if err != nil {
		panic(err)
	}

	log.Info().Str("component", "example").Msg("logger initialized successfully")
}

func ExampleNewComponent() {
	componentLogger, err := logger.NewComponent("database", logger.DefaultConfig())
	if err != nil {
		panic(err)
	}

	componentLogger.Info().
		Str("table", "users").
		Int("count", 150).
		Msg("query executed successfully")
}

func ExampleLogger_withFields() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fields := map[string]interface{}{
		"user_id":    12345,
		"session_id": "abc-123-def",
		"ip_address": "192.168.1.100",
	}

	enriched := log.WithFields(fields)
	enriched.Info().Msg("user logged in")
}

func ExampleFieldLogger() {
	base := zerolog.Nop()
	fieldLogger := logger.NewFieldLogger(&base)

	userLogger := fieldLogger.WithField("user_id", 12345)
	userLogger.Info("user authenticated")

	err := errors.New("database connection failed")
	userLogger.WithError(err).Error("failed to save user data")
}

func ExampleLogger_setDebug() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		panic(err)
	}

	log.SetDebug(true)
	log.Debug().Msg("this debug message will be visible")

	log.SetDebug(false)
	log.Debug().Msg("this debug message will be hidden")
	log.Info().Msg("this info message will still be visible")
}

func Example_usageInService() {
	serviceLogger, err := logger.NewComponent("user-service", logger.DefaultConfig())
	if err != nil {
		panic(err)
	}

	userID := 12345
	email := "user@example.com"

	serviceLogger.Info().
		Int("user_id", userID).
		Str("email", email).
		Msg("processing user registration")

	if err := processUser(userID); err != nil {
		serviceLogger.Error().
			Err(err).
			Int("user_id", userID).
			Msg("failed to process user")
	}

	serviceLogger.Info().
		Int("user_id", userID).
		Msg("user registration completed successfully")
}

func processUser(userID int) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user ID: %d", userID)
	}

	return nil
}
