// internal/server/handlers/websocket.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"campusnav/internal/adapter/events"
	"campusnav/internal/config"
	"campusnav/internal/domain/identity"
	"campusnav/internal/domain/location"
	"campusnav/internal/mapsync"
)

// MapSessionConfig contains configuration for map WebSocket sessions
type MapSessionConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultMapSessionConfig returns the default session configuration
func DefaultMapSessionConfig() MapSessionConfig {
	return MapSessionConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the router; the map session is
		// read-only for anonymous clients.
		return true
	},
}

// clientMessage is what the browser sends us.
type clientMessage struct {
	Type string `json:"type"`

	// search
	Text string `json:"text,omitempty"`

	// category ("" clears the filter)
	Value string `json:"value,omitempty"`

	// select / marker_click ("" clears the selection)
	ID string `json:"id,omitempty"`

	// click (admin)
	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`
}

// mapSession is one connected map client: a view state, a synchronizer
// over a wire surface, and a NATS subscription that triggers
// invalidate-and-refetch whenever the location set changes.
type mapSession struct {
	conn      *websocket.Conn
	send      chan []byte
	directory location.Service
	campus    config.CampusConfig
	admin     bool
	logger    *zap.Logger

	surface *wireSurface
	sync    *mapsync.Synchronizer
	view    *mapsync.ViewState

	sub *nats.Subscription

	// work serializes refresh/select/click handling across the read
	// pump and the NATS callback goroutine.
	work chan func()
	done chan struct{}
}

// MapWebSocketHandler serves the server-driven map session. Anonymous
// clients get the read-only map; a valid bearer token (query param)
// enables the admin click contract, forwarding raw map clicks back to
// the client for the location form.
func MapWebSocketHandler(
	directory location.Service,
	bus *events.Bus,
	auth identity.Service,
	campus config.CampusConfig,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := false
		if token := bearerToken(r); token != "" {
			if _, err := auth.CurrentUser(r.Context(), token); err == nil {
				admin = true
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("failed to upgrade to WebSocket", zap.Error(err))
			return
		}

		session := &mapSession{
			conn:      conn,
			send:      make(chan []byte, 256),
			directory: directory,
			campus:    campus,
			admin:     admin,
			logger:    logger,
			work:      make(chan func(), 32),
			done:      make(chan struct{}),
		}

		session.surface = newWireSurface(session.sendCommand)

		surfaceCfg := mapsync.SurfaceConfig{
			Center: campus.Center,
			Zoom:   campus.DefaultZoom,
			Bounds: campus.Bounds,
		}
		if admin {
			surfaceCfg.OnClick = session.forwardClick
		}

		session.sync = mapsync.New(session.surface, mapsync.Config{
			Surface:   surfaceCfg,
			FocusZoom: campus.FocusZoom,
			OnSelect:  session.markerSelected,
		})

		session.view = mapsync.NewViewState(session.refresh)

		if bus != nil {
			sub, err := bus.SubscribeLocationsChanged(func(events.ChangeEvent) {
				session.enqueue(session.refresh)
			})
			if err != nil {
				logger.Warn("failed to subscribe to change events", zap.Error(err))
			} else {
				session.sub = sub
			}
		}

		go session.writePump()
		go session.workLoop()
		go session.readPump()

		// First paint: mount the surface, then load the unfiltered
		// list.
		session.enqueue(func() {
			if _, err := session.sync.Mount(); err != nil {
				logger.Warn("failed to mount map surface", zap.Error(err))
				return
			}
			session.refresh()
		})

		logger.Info("new map session",
			zap.Bool("admin", admin),
			zap.String("remote", r.RemoteAddr))
	}
}

// sendCommand serializes a wire command into the send channel. A slow
// client that fills its buffer gets commands dropped; it will converge
// on the next refresh.
func (s *mapSession) sendCommand(cmd wireCommand) {
	select {
	case s.send <- marshalCommand(cmd):
	default:
		s.logger.Warn("map session send buffer full, dropping command",
			zap.String("type", cmd.Type))
	}
}

// enqueue hands work to the session's single worker goroutine.
func (s *mapSession) enqueue(fn func()) {
	select {
	case <-s.done:
	case s.work <- fn:
	default:
		// Work queue full; the pending refreshes will cover it.
	}
}

func (s *mapSession) workLoop() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.work:
			fn()
		}
	}
}

// refresh re-queries the store with the current filter and reconciles
// the marker set. The location list also goes to the client for its
// sidebar rendering.
func (s *mapSession) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locations, err := s.directory.List(ctx, s.view.Filter())
	if err != nil {
		s.logger.Warn("map session query failed", zap.Error(err))
		s.sendCommand(wireCommand{Type: "error", Title: "Failed to load locations"})
		return
	}

	s.sendLocations(locations)

	if err := s.sync.Reconcile(locations); err != nil {
		s.logger.Warn("marker reconciliation failed", zap.Error(err))
	}
}

func (s *mapSession) sendLocations(locations []location.Location) {
	if locations == nil {
		locations = []location.Location{}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":      "locations",
		"locations": locations,
	})
	if err != nil {
		return
	}

	select {
	case s.send <- payload:
	default:
	}
}

// markerSelected is the synchronizer's selection callback: a marker
// click lands here.
func (s *mapSession) markerSelected(loc location.Location) {
	s.view.Select(&loc)
	s.sync.SetSelection(&loc)
}

// forwardClick implements the admin click contract: raw coordinates go
// straight back to the client, unvalidated, for the location form.
func (s *mapSession) forwardClick(lat, lng float64) {
	s.sendCommand(wireCommand{Type: "map_click", Lat: lat, Lng: lng})
}

func (s *mapSession) handleMessage(msg clientMessage) {
	switch msg.Type {
	case "search":
		s.view.SetSearch(msg.Text)

	case "category":
		if msg.Value == "" {
			s.view.SetCategory(nil)
			return
		}
		category, err := location.ParseCategory(msg.Value)
		if err != nil {
			s.sendCommand(wireCommand{Type: "error", Title: "Unknown category"})
			return
		}
		s.view.SetCategory(&category)

	case "select":
		s.handleSelect(msg.ID)

	case "marker_click":
		s.surface.markerClicked(msg.ID)

	case "click":
		if s.admin {
			s.surface.handleClick(msg.Lat, msg.Lng)
		}

	default:
		s.logger.Debug("ignoring unknown map message", zap.String("type", msg.Type))
	}
}

// handleSelect resolves a selection by id. The selection may point at
// a location outside the current filtered list; that is a valid
// transient state, so the lookup goes to the store, not the marker
// registry.
func (s *mapSession) handleSelect(id string) {
	if id == "" {
		s.view.Select(nil)
		s.sync.SetSelection(nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	loc, err := s.directory.Get(ctx, id)
	if err != nil {
		s.logger.Debug("selection lookup failed", zap.String("id", id), zap.Error(err))
		return
	}

	s.view.Select(loc)
	s.sync.SetSelection(loc)
}

// readPump reads client messages until the connection drops, then
// tears the whole session down.
func (s *mapSession) readPump() {
	defer s.close()

	cfg := DefaultMapSessionConfig()
	s.conn.SetReadLimit(cfg.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("map session read error", zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendCommand(wireCommand{Type: "error", Title: "Malformed message"})
			continue
		}

		s.enqueue(func() { s.handleMessage(msg) })
	}
}

// writePump writes queued commands and keeps the connection alive with
// pings.
func (s *mapSession) writePump() {
	cfg := DefaultMapSessionConfig()
	ticker := time.NewTicker(cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			return

		case payload := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close releases everything the session holds: the NATS subscription,
// the synchronizer (markers, surface, click listener) and the socket.
// Nothing may survive the session.
func (s *mapSession) close() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.logger.Debug("failed to unsubscribe map session", zap.Error(err))
		}
	}

	s.sync.Close()
	s.conn.Close()

	s.logger.Info("map session closed")
}
