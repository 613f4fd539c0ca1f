package placeholder

import (
	"context"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func (c *Client) AllAlbums(ctx context.Context) ([]models.Album, error) {
	return fetchList[models.Album](ctx, c, "/albums", nil, "album", validation.ValidateAlbum)
}

func (c *Client) AlbumByID(ctx context.Context, id int) (models.Album, error) {
	if err := checkID("album id", id); err != nil {
		return models.Album{}, err
	}
	return fetchOne[models.Album](ctx, c, idPath("albums", id), "album", validation.ValidateAlbum)
}
