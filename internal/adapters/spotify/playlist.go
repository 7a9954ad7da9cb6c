package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/seotrue/Feelist/internal/core/domain"
	"github.com/seotrue/Feelist/internal/core/ports"
)

var _ ports.PlaylistPublisher = (*Client)(nil)

// CurrentUser fetches the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (domain.UserProfile, error) {
	var resp wireUser
	if err := c.do(ctx, "GET", "/me", accessToken, nil, &resp); err != nil {
		return domain.UserProfile{}, err
	}
	return mapUser(resp), nil
}

// PublishPlaylist creates a private playlist, appends the given track URIs
// and refetches the final state so the caller sees exactly what Spotify
// stored. If the append fails the freshly created playlist is unfollowed so
// the user's library is not left with an empty shell.
func (c *Client) PublishPlaylist(ctx context.Context, accessToken, name, description string, trackURIs []string) (domain.Playlist, error) {
	if len(trackURIs) == 0 {
		return domain.Playlist{}, &domain.ValidationError{Field: "tracks", Reason: "no tracks to add"}
	}

	var created wirePlaylist
	createBody := createPlaylistRequest{Name: name, Description: description, Public: false}
	if err := c.do(ctx, "POST", "/me/playlists", accessToken, createBody, &created); err != nil {
		return domain.Playlist{}, err
	}
	if created.ID == "" {
		return domain.Playlist{}, &domain.UpstreamError{
			Service: "spotify",
			Status:  0,
			Message: "playlist created without an id",
		}
	}

	addPath := fmt.Sprintf("/playlists/%s/items", url.PathEscape(created.ID))
	if err := c.do(ctx, "POST", addPath, accessToken, addItemsRequest{URIs: trackURIs}, nil); err != nil {
		c.cleanupPlaylist(ctx, accessToken, created.ID)
		return domain.Playlist{}, err
	}

	return c.GetPlaylist(ctx, accessToken, created.ID)
}

// GetPlaylist refetches a playlist by id.
func (c *Client) GetPlaylist(ctx context.Context, accessToken, playlistID string) (domain.Playlist, error) {
	path := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	var resp wirePlaylist
	if err := c.do(ctx, "GET", path, accessToken, nil, &resp); err != nil {
		return domain.Playlist{}, err
	}
	if resp.ID == "" {
		return domain.Playlist{}, &domain.NotFoundError{Resource: "playlist"}
	}
	return mapPlaylist(resp), nil
}

// cleanupPlaylist unfollows a playlist created during a failed publish. The
// original failure is what the caller cares about, so cleanup errors are
// logged and dropped.
func (c *Client) cleanupPlaylist(ctx context.Context, accessToken, playlistID string) {
	path := fmt.Sprintf("/playlists/%s/followers", url.PathEscape(playlistID))
	if err := c.do(ctx, "DELETE", path, accessToken, nil, nil); err != nil {
		c.log.Warn().Err(err).Str("playlist_id", playlistID).Msg("failed to clean up playlist after append error")
		return
	}
	c.log.Info().Str("playlist_id", playlistID).Msg("cleaned up playlist after append error")
}
