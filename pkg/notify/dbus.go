// Package notify delivers user-visible alerts: desktop notifications over
// the org.freedesktop.Notifications D-Bus interface and arbitrary shell
// command hooks.
package notify

import (
	"fmt"
	"sync"

	godbus "github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/battalert/battalert/pkg/monitor"
)

const (
	notifyBusName    = "org.freedesktop.Notifications"
	notifyObjectPath = "/org/freedesktop/Notifications"
	notifyInterface  = "org.freedesktop.Notifications"
)

// Expiry timeouts, matching the libnotify constants.
const (
	expiresDefault int32 = -1
	expiresNever   int32 = 0
)

// Urgency hint values from the Desktop Notifications spec.
const (
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// DesktopSink shows desktop notifications on the session bus. It keeps the
// last notification ID and passes it as replaces_id, so the monitor updates
// a single notification instead of stacking new ones.
type DesktopSink struct {
	conn    *godbus.Conn
	obj     godbus.BusObject
	appName string
	icon    string
	expiry  int32

	mu     sync.Mutex
	lastID uint32
}

// NewDesktopSink connects to the session bus. expires selects the server
// default timeout; otherwise notifications stay until dismissed.
func NewDesktopSink(appName, icon string, expires bool) (*DesktopSink, error) {
	conn, err := godbus.SessionBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect to session bus")
	}

	expiry := expiresNever
	if expires {
		expiry = expiresDefault
	}

	return &DesktopSink{
		conn:    conn,
		obj:     conn.Object(notifyBusName, godbus.ObjectPath(notifyObjectPath)),
		appName: appName,
		icon:    icon,
		expiry:  expiry,
	}, nil
}

// Notify shows or updates the notification with the given message and the
// battery level as body text.
func (s *DesktopSink) Notify(message string, level int, urgency monitor.Urgency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hint := urgencyNormal
	if urgency == monitor.UrgencyCritical {
		hint = urgencyCritical
	}

	body := fmt.Sprintf("Battery level: %d%%", level)
	hints := map[string]godbus.Variant{
		"urgency": godbus.MakeVariant(hint),
	}

	call := s.obj.Call(notifyInterface+".Notify", 0,
		s.appName, s.lastID, s.icon, message, body, []string{}, hints, s.expiry)
	if call.Err != nil {
		return pkgerrors.Wrap(call.Err, "notification call failed")
	}

	return call.Store(&s.lastID)
}

// Close dismisses the currently visible notification, if any.
func (s *DesktopSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastID == 0 {
		return nil
	}

	call := s.obj.Call(notifyInterface+".CloseNotification", 0, s.lastID)
	if call.Err != nil {
		return pkgerrors.Wrap(call.Err, "close notification call failed")
	}
	s.lastID = 0
	return nil
}

// Shutdown releases the bus connection.
func (s *DesktopSink) Shutdown() error {
	return s.conn.Close()
}
