// Package common holds shared fixtures for folio's storage tests.
package common

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Container settings matching the folio deployment target.
const (
	surrealImage = "surrealdb/surrealdb:v3.0.0"
	surrealPort  = "8000/tcp"

	// RootUser and RootPass are the credentials the throwaway test
	// instance is started with.
	RootUser = "root"
	RootPass = "root"
)

// SurrealDB points tests at a running instance.
type SurrealDB struct {
	address   string
	container testcontainers.Container
}

var (
	startOnce sync.Once
	instance  *SurrealDB
	startErr  error
)

// StartSurrealDB returns the process-wide SurrealDB used by storage tests.
// Set FOLIO_TEST_SURREAL_ADDR to reuse an instance you already have running;
// otherwise a container is started once and shared by every test in the run.
func StartSurrealDB(t *testing.T) *SurrealDB {
	t.Helper()

	startOnce.Do(func() {
		if addr := os.Getenv("FOLIO_TEST_SURREAL_ADDR"); addr != "" {
			instance = &SurrealDB{address: addr}
			return
		}
		instance, startErr = startContainer()
	})

	if startErr != nil {
		t.Fatalf("SurrealDB unavailable: %v", startErr)
	}
	return instance
}

func startContainer() (*SurrealDB, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        surrealImage,
			ExposedPorts: []string{surrealPort},
			Cmd:          []string{"start", "--user", RootUser, "--pass", RootPass},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(surrealPort),
				wait.ForLog("Started web server"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", surrealImage, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("resolve container host: %w", err)
	}
	port, err := container.MappedPort(ctx, surrealPort)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("resolve mapped port: %w", err)
	}

	return &SurrealDB{
		address:   fmt.Sprintf("ws://%s:%s/rpc", host, port.Port()),
		container: container,
	}, nil
}

// Address returns the WebSocket RPC endpoint.
func (s *SurrealDB) Address() string {
	return s.address
}

// Cleanup terminates the container, if one was started. Externally provided
// instances are left alone.
func (s *SurrealDB) Cleanup() {
	if s != nil && s.container != nil {
		s.container.Terminate(context.Background())
	}
}
