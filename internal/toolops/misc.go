package toolops

import (
	"github.com/shebe-oss/shebe/internal/config"
	"github.com/shebe-oss/shebe/pkg/version"
)

// GetServerInfo returns the server's name and version for the
// get_server_info tool.
func GetServerInfo() ServerInfoResponse {
	return ServerInfoResponse{
		Name:    "shebe",
		Version: version.Short(),
	}
}

// GetConfig returns the resolved, non-secret configuration surface for
// the get_config tool. Unlike the rest of this package it takes the
// full internal/config.Config directly: get_config is the one
// operation whose job is to expose fields Limits deliberately omits.
func GetConfig(cfg config.Config) ConfigResponse {
	return ConfigResponse{
		ChunkSize:            cfg.ChunkSize,
		Overlap:              cfg.Overlap,
		MaxFileSizeMB:        cfg.MaxFileSizeMB,
		IncludePatterns:      cfg.IncludePatterns,
		ExcludePatterns:      cfg.ExcludePatterns,
		IndexDir:             cfg.IndexDir,
		DefaultK:             cfg.DefaultK,
		MaxK:                 cfg.MaxK,
		MaxQueryLength:       cfg.MaxQueryLength,
		MaxConcurrentIndexes: cfg.MaxConcurrentIndexes,
		RequestTimeoutSec:    cfg.RequestTimeoutSec,
		LogLevel:             cfg.LogLevel,
	}
}
