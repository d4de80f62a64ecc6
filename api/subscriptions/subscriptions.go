// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/api/utils"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/metrics"
	"github.com/umbrella-network/umbledger/umb"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Peers only send control frames.
	maxMessageSize = 512

	backlog = 64
)

var (
	logger = log.New("pkg", "subscriptions")

	metricActiveWebsockets = metrics.LazyLoadGauge("api_active_websocket_count")
)

type Subscriptions struct {
	ledger   *ledger.Ledger
	upgrader *websocket.Upgrader
	done     chan struct{}

	// mu orders wg.Add against Close
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(ledger *ledger.Ledger, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		ledger: ledger,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func parseFilter(req *http.Request) (*EventFilter, error) {
	var filter EventFilter
	query := req.URL.Query()
	if s := query.Get("address"); s != "" {
		addr, err := umb.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "address")
		}
		filter.Address = addr
	}
	if s := query.Get("topic0"); s != "" {
		topic, err := umb.ParseBytes32(s)
		if err != nil {
			return nil, errors.WithMessage(err, "topic0")
		}
		filter.Topic0 = &topic
	}
	return &filter, nil
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return utils.BadRequest(err)
	}

	if !s.enter() {
		return utils.HTTPError(errors.New("subscriptions closed"), http.StatusServiceUnavailable)
	}
	defer s.wg.Done()

	// subscribe before the handshake completes, so no execution after it is missed
	ch := make(chan *ledger.Execution, backlog)
	sub := s.ledger.Subscribe(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	metricActiveWebsockets().Add(1)
	defer metricActiveWebsockets().Add(-1)

	s.pipe(conn, ch, sub, filter)
	return nil
}

// pipe forwards matching executions to conn until the peer leaves or the subscriptions close.
func (s *Subscriptions) pipe(conn *websocket.Conn, ch <-chan *ledger.Execution, sub event.Subscription, filter *EventFilter) {
	closed := make(chan struct{})
	go s.readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-closed:
			return
		case err := <-sub.Err():
			if err != nil {
				logger.Debug("subscription failed", "err", err)
			}
			return
		case exec := <-ch:
			msg := filter.match(exec)
			if msg == nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("write failed", "err", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Subscriptions) readPump(conn *websocket.Conn, closed chan struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket closed", "err", err)
			}
			return
		}
	}
}

// enter registers a handler, unless Close has been called.
func (s *Subscriptions) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

// Close ends all websocket connections and waits for their handlers.
// Requests arriving afterwards are refused.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
