package hosting

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the catalog routes.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/artists", handler.ListArtists)
	app.Get("/artists/:name", handler.GetArtist)
	app.Get("/artists/:name/albums/:album", handler.GetAlbum)
	app.Get("/tracks", handler.ListTracks)
}
