package tidalapi

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"
)

// GetSession fetches /sessions and, unlike the other convenience calls,
// is load-bearing: it learns CountryCode and UserID, which every other
// request's query parameters and path segments depend on. Called by C3's
// session bootstrap right after a successful auth/refresh.
func (c *Client) GetSession(ctx context.Context) (*SessionInfo, error) {
	var out SessionInfo
	url := c.apiBase() + "/sessions"
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	c.CountryCode = out.CountryCode
	c.UserID = out.UserID
	return &out, nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, userID int64) (*UserProfile, error) {
	var out UserProfile
	if err := c.Get(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSubscription fetches a user's subscription tier and status.
func (c *Client) GetSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	var out Subscription
	if err := c.Get(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/subscription"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFolders fetches a user's favorites folders.
func (c *Client) GetFolders(ctx context.Context, userID int64) ([]Folder, error) {
	var resp struct {
		Items []Folder `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/folders"), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetFolderItems pages the contents of one favorites folder.
func (c *Client) GetFolderItems(ctx context.Context, userID int64, folderID string, limit, offset int) (*ItemsPage[FolderItem], error) {
	var out ItemsPage[FolderItem]
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/folders/"+folderID+"/items",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFolder creates a new favorites folder, optionally nested under
// parent.
func (c *Client) CreateFolder(ctx context.Context, userID int64, name string, parent string) (*Folder, error) {
	body := map[string]string{"name": name}
	if parent != "" {
		body["parent"] = parent
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var out Folder
	if err := c.Post(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/folders"), encoded, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFolder deletes a favorites folder.
func (c *Client) DeleteFolder(ctx context.Context, userID int64, folderID string) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/folders/"+folderID))
}
