package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jsphweid/chordtrainer/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
)

// Handlers receive everything the watcher sees. OnMessage gets raw device
// bytes on the driver's goroutine. OnConnect and OnDisconnect run with the
// watcher locked and must not call back into it.
type Handlers struct {
	OnMessage    func(raw []byte)
	OnConnect    func(device string)
	OnDisconnect func(reason string)
}

// Watcher keeps one input port connected, preferring devices whose name
// matches a preferred pattern and never touching excluded (virtual) ports.
// It survives unplugging and replugging.
type Watcher struct {
	mu        sync.Mutex
	drv       drivers.Driver
	logger    *zap.Logger
	handlers  Handlers
	preferred []string
	excluded  []string
	interval  time.Duration

	active     *connection
	scannedAt  time.Time
	lastReason string
}

// connection is the port currently listened to.
type connection struct {
	name string
	port drivers.In
	stop func()
}

func (c *connection) close() {
	c.stop()
	_ = c.port.Close()
}

func NewWatcher(drv drivers.Driver, logger *zap.Logger, preferred, excluded []string, interval time.Duration, h Handlers) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		drv:       drv,
		logger:    logger,
		handlers:  h,
		preferred: preferred,
		excluded:  excluded,
		interval:  interval,
	}
}

// Run ticks until ctx is done, then closes the connection.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.Close()

	w.Tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Tick()
		}
	}
}

// Close drops the active connection. The driver itself belongs to the caller.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil {
		w.active.close()
		w.active = nil
	}
}

// Connected is the name of the port in use, or "".
func (w *Watcher) Connected() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == nil {
		return ""
	}
	return w.active.name
}

// Tick rescans devices at most once per interval, reconnecting or reporting
// a vanished device.
func (w *Watcher) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if !w.scannedAt.IsZero() && now.Sub(w.scannedAt) < w.interval {
		return
	}
	w.scannedAt = now

	ports, err := w.usablePorts()
	if err != nil {
		w.logger.Error("midi: list inputs failed", zap.Error(err))
		return
	}

	if w.active != nil {
		if _, ok := ports[w.active.name]; !ok {
			w.logger.Warn("midi: device disappeared", zap.String("device", w.active.name))
			w.dropLocked("MIDI keyboard disconnected")
		}
		return
	}

	names := util.SortedKeys(ports)
	if len(names) == 0 {
		w.disconnected("no MIDI keyboard found")
		return
	}
	name, ok := PickPreferred(names, w.preferred)
	if !ok {
		w.disconnected("several MIDI devices found, none preferred: " + strings.Join(names, ", "))
		return
	}
	if err := w.connectLocked(name, ports[name]); err != nil {
		w.logger.Error("midi: connect failed", zap.String("device", name), zap.Error(err))
		w.disconnected(err.Error())
	}
}

// usablePorts maps the name of every input that is not excluded to its port.
func (w *Watcher) usablePorts() (map[string]drivers.In, error) {
	ins, err := w.drv.Ins()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ins))
	byName := make(map[string]drivers.In, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
		byName[in.String()] = in
	}

	ports := make(map[string]drivers.In)
	for _, name := range FilterExcluded(names, w.excluded) {
		ports[name] = byName[name]
	}
	w.logger.Debug("midi: inputs found", zap.Strings("devices", util.SortedKeys(ports)))
	return ports, nil
}

// dropLocked closes the active port and forces a rescan on the next tick.
func (w *Watcher) dropLocked(reason string) {
	if w.active != nil {
		w.active.close()
		w.active = nil
	}
	w.scannedAt = time.Time{}
	w.disconnected(reason)
}

// disconnected reports a reason once, not on every rescan.
func (w *Watcher) disconnected(reason string) {
	if reason == w.lastReason {
		return
	}
	w.lastReason = reason
	if w.handlers.OnDisconnect != nil {
		w.handlers.OnDisconnect(reason)
	}
}

func (w *Watcher) connectLocked(name string, port drivers.In) error {
	if err := port.Open(); err != nil {
		return errors.Wrapf(err, "open %q", name)
	}
	stop, err := midi.ListenTo(port, func(msg midi.Message, _ int32) {
		w.logger.Debug("midi: message", zap.String("msg", msg.String()))
		if w.handlers.OnMessage != nil {
			w.handlers.OnMessage(msg.Bytes())
		}
	}, midi.HandleError(func(listenErr error) {
		w.logger.Warn("midi: listener error", zap.String("device", name), zap.Error(listenErr))
		// the driver is still inside this callback; stopping it here would deadlock
		go w.lost(name)
	}))
	if err != nil {
		_ = port.Close()
		return errors.Wrapf(err, "listen %q", name)
	}

	w.active = &connection{name: name, port: port, stop: stop}
	w.lastReason = ""
	w.logger.Info("midi: connected", zap.String("device", name))
	if w.handlers.OnConnect != nil {
		w.handlers.OnConnect(name)
	}
	return nil
}

// lost drops name if it is still the active port.
func (w *Watcher) lost(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil && w.active.name == name {
		w.dropLocked("MIDI keyboard disconnected")
	}
}

// FilterExcluded drops names matching any pattern, case-insensitively.
func FilterExcluded(names, excluded []string) []string {
	var res []string
	for _, name := range names {
		skip := false
		for _, pat := range excluded {
			if containsCI(name, pat) {
				skip = true
				break
			}
		}
		if !skip {
			res = append(res, name)
		}
	}
	return res
}

// PickPreferred returns the first input matching a preferred pattern, in
// pattern order. Without a match a lone input is still taken.
func PickPreferred(inputs, preferred []string) (string, bool) {
	for _, pat := range preferred {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
