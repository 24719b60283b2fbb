package config

import (
	"fmt"

	"task-board/internal/repository"
	"task-board/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the configured environment
func NewRepositoryFactory(config *Config) *RepositoryFactory {
	return &RepositoryFactory{env: Environment(config.Application.Environment), config: config}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (repository.KeyValueStore, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(rf.config)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository() (repository.KeyValueStore, error) {
	repo, err := sqlite.NewWithOptions(rf.config.Storage.Filename, storageOptions(rf.config))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (repository.KeyValueStore, error) {
	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), storageOptions(config))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.KeyValueStore, error) {
	return repository.NewMemoryStore(), nil
}

func storageOptions(config *Config) sqlite.Options {
	return sqlite.Options{
		QueryTimeout: config.GetQueryTimeout(),
		WriteTimeout: config.GetWriteTimeout(),
	}
}
