package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/battalert/battalert/pkg/config"
	"github.com/battalert/battalert/pkg/monitor"
)

// GetStatus returns the daemon's last completed check.
func (c *Client) GetStatus() (*monitor.StatusReport, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get status")
	}

	var report monitor.StatusReport
	if err := json.Unmarshal([]byte(ret), &report); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal status")
	}
	return &report, nil
}

// GetConfig returns the daemon's running configuration.
func (c *Client) GetConfig() (*config.Config, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get config")
	}

	var conf config.Config
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal config")
	}
	return &conf, nil
}

// Check asks the daemon to re-sample immediately.
func (c *Client) Check() (string, error) {
	return c.Post("/check", "")
}

// GetVersion returns the daemon's version string.
func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrap(err, "failed to unmarshal version")
	}
	return v, nil
}
