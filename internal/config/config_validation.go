// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Redis.Address == "" || cfg.Storage.Images.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.SessionSignKey == "" || cfg.App.SessionIssuer == "" || cfg.App.CookieLifetime <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Session.TimeoutSeconds < 0 || cfg.Session.ExpirationSeconds < 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Pagination.DefaultPageSize <= 0 || cfg.Pagination.MaxQuantity <= 0 {
		return ErrInvalidPaginationConfigs
	}

	if cfg.Mail.AMQPURL == "" || cfg.Mail.Queue == "" || cfg.Mail.From == "" {
		return ErrInvalidMailConfigs
	}

	if cfg.Workers.SessionSweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
