// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

//go:build integration

// Package testinfra provides testcontainers helpers for integration tests.
//
// Tests using it must carry the integration build tag:
//
//	go test -tags integration ./internal/store/mongostore/...
package testinfra

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is the MongoDB image used when MONGO_TEST_IMAGE is unset.
const DefaultMongoImage = "mongo:7"

// SkipIfNoDocker skips the test when the Docker daemon is unreachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable reports whether `docker info` succeeds.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// CleanupContainer terminates container, logging failures.
func CleanupContainer(t *testing.T, container testcontainers.Container) {
	t.Helper()

	if container == nil {
		return
	}
	if err := testcontainers.TerminateContainer(container); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// StartMongo runs a throwaway MongoDB container for the duration of t and
// returns its connection string. The test is skipped without Docker.
func StartMongo(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	image := os.Getenv("MONGO_TEST_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		t.Fatalf("start mongodb container: %v", err)
	}
	t.Cleanup(func() { CleanupContainer(t, container) })

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongodb connection string: %v", err)
	}
	return uri
}
