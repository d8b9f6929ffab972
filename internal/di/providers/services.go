package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/service"
	"github.com/listenupapp/catalog-server/internal/validation"
)

// ProvideValidator provides the shared input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, v, log.Logger), nil
}

// ProvideArtistService provides the artist service.
func ProvideArtistService(i do.Injector) (*service.ArtistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewArtistService(storeHandle.Store, v, log.Logger), nil
}

// ProvideAlbumService provides the album service.
func ProvideAlbumService(i do.Injector) (*service.AlbumService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAlbumService(storeHandle.Store, v, log.Logger), nil
}

// ProvideSongService provides the song service.
func ProvideSongService(i do.Injector) (*service.SongService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSongService(storeHandle.Store, v, log.Logger), nil
}

// ProvidePlaylistService provides the playlist service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlaylistService(storeHandle.Store, v, log.Logger), nil
}

// ProvideMembershipService provides the playlist membership service.
func ProvideMembershipService(i do.Injector) (*service.MembershipService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMembershipService(storeHandle.Store, log.Logger), nil
}

// ProvideDetailService provides the detail read service.
func ProvideDetailService(i do.Injector) (*service.DetailService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDetailService(storeHandle.Store, log.Logger), nil
}
