package client

import "fmt"

// DefaultPlayout is the playout used by JSPlayerURL when none is given.
const DefaultPlayout = "default"

// ImageURL returns the URL of image scaled to width x height. image is the
// path as stored in the VMS, including its leading slash.
func (c *Client) ImageURL(width, height int, image string) string {
	return fmt.Sprintf("%s/image/%d/%d%s", c.baseURL, width, height, image)
}

// JSPlayerURL returns the embed script URL for a clip. An empty playoutID
// selects DefaultPlayout.
func (c *Client) JSPlayerURL(clipID, playoutID string) string {
	if playoutID == "" {
		playoutID = DefaultPlayout
	}
	return fmt.Sprintf("%s/p/%s/c/%s.js", c.baseURL, playoutID, clipID)
}
