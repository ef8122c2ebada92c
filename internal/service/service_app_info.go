// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

type appInfoService struct {
	appVersion string
	buildInfo  models.AppBuildInfo

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		buildInfo:  buildInfo,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// GetVersionInfo reports the configured version together with the linker
// supplied build metadata.
func (s *appInfoService) GetVersionInfo(ctx context.Context) models.VersionResponse {
	return models.VersionResponse{
		Version:      s.appVersion,
		BuildVersion: s.buildInfo.BuildVersion(),
		BuildDate:    s.buildInfo.BuildDate(),
		BuildCommit:  s.buildInfo.BuildCommit(),
	}
}
