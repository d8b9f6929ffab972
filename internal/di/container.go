// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/catalog-server/internal/config"
	"github.com/listenupapp/catalog-server/internal/di/providers"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/service"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideRateLimiter)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideArtistService)
	do.Provide(injector, providers.ProvideAlbumService)
	do.Provide(injector, providers.ProvideSongService)
	do.Provide(injector, providers.ProvidePlaylistService)
	do.Provide(injector, providers.ProvideMembershipService)
	do.Provide(injector, providers.ProvideDetailService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.ArtistService](injector)
	_ = do.MustInvoke[*service.AlbumService](injector)
	_ = do.MustInvoke[*service.SongService](injector)
	_ = do.MustInvoke[*service.PlaylistService](injector)
	_ = do.MustInvoke[*service.MembershipService](injector)
	_ = do.MustInvoke[*service.DetailService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
