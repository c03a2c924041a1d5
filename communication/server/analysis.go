package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gridmcts/communication"
	"gridmcts/meta"
	"gridmcts/searcher"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsIdlePingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// analysis streams the policy of a position while the search keeps running.
// One analysis runs per connection; a new analyze message replaces it.
type analysis struct {
	server *Server
	conn   *websocket.Conn
	sched  *searcher.Scheduler
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	generation int
	sub        int
	active     bool
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &analysis{
		server: s,
		conn:   conn,
		sched:  searcher.NewScheduler(s.tick),
		send:   make(chan []byte, 16),
		ctx:    ctx,
		cancel: cancel,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := writeWSWithHeartbeat(conn, a.send); err != nil {
			log.Debug().Err(err).Msg("analysis writer stopped")
		}
		cancel()
		conn.Close()
	}()

	a.readLoop()

	cancel()
	a.sched.Stop()
	close(a.send)
	wg.Wait()
	conn.Close()
}

func (a *analysis) readLoop() {
	for {
		var msg communication.Message
		if err := a.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("analysis connection closed")
			}
			return
		}

		switch msg.Type {
		case communication.MessageAnalyze:
			var req communication.PolicyRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				a.sendError(err)
				continue
			}
			if err := a.start(req); err != nil {
				a.sendError(err)
			}
		case communication.MessageStop:
			a.stop()
		case "ping":
		default:
			log.Debug().Msgf("ignoring analysis message %q", msg.Type)
		}
	}
}

func (a *analysis) start(req communication.PolicyRequest) error {
	state, err := req.State.Decode()
	if err != nil {
		return err
	}
	mcts, err := a.server.newSearch(req, a.server.maxRounds)
	if err != nil {
		return err
	}
	limit := req.Rounds
	if limit <= 0 || limit > a.server.maxRounds {
		limit = a.server.maxRounds
	}
	mcts.Reset(state)
	player := state.Player()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active {
		a.sched.Unsubscribe(a.sub)
	}
	a.generation++
	generation := a.generation
	a.active = true

	rounds := 0
	a.sub = a.sched.Subscribe(func(now time.Time, delta time.Duration) {
		steps := min(meta.ANALYSIS_ROUNDS_PER_TICK, limit-rounds)
		for i := 0; i < steps; i++ {
			if err := mcts.Step(); err != nil {
				if a.finish(generation) {
					a.sendError(err)
				}
				return
			}
			rounds++
		}
		snapshot := communication.EncodePolicy(mcts.Values(player))
		if rounds >= limit {
			if a.finish(generation) {
				a.sendMessage(communication.MessageDone, snapshot)
			}
			return
		}
		a.offer(generation, snapshot)
	})
	a.sched.Start(a.ctx)
	log.Debug().Msgf("analysing %s position for %d rounds", state.Variant().Name, limit)
	return nil
}

func (a *analysis) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active {
		a.sched.Unsubscribe(a.sub)
		a.active = false
	}
	a.generation++
}

// finish ends the analysis of the given generation and reports whether it
// was still the current one. Replaced analyses were already unsubscribed.
func (a *analysis) finish(generation int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if generation != a.generation {
		return false
	}
	a.sched.Unsubscribe(a.sub)
	a.active = false
	return true
}

// offer sends an intermediate snapshot unless the writer is behind.
func (a *analysis) offer(generation int, snapshot communication.PolicyResponse) {
	a.mu.Lock()
	current := generation == a.generation
	a.mu.Unlock()
	if !current {
		return
	}
	payload, err := encode(communication.MessagePolicy, snapshot)
	if err != nil {
		log.Error().Err(err).Msg("encoding policy snapshot")
		return
	}
	select {
	case a.send <- payload:
	default:
	}
}

func (a *analysis) sendError(err error) {
	a.sendMessage(communication.MessageError, communication.ErrorResponse{Error: err.Error()})
}

func (a *analysis) sendMessage(kind string, payload any) {
	raw, err := encode(kind, payload)
	if err != nil {
		log.Error().Err(err).Msgf("encoding %s message", kind)
		return
	}
	select {
	case a.send <- raw:
	case <-a.ctx.Done():
	}
}

func encode(kind string, payload any) ([]byte, error) {
	msg, err := communication.NewMessage(kind, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(communication.Message{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
