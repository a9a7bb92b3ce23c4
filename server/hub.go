package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	log "github.com/sirupsen/logrus"
)

const replyBuffer = 16

// Hub serves one websocket connection. Requests are solved concurrently;
// replies are written by a single goroutine.
type Hub struct {
	id      uuid.UUID
	conn    *websocket.Conn
	solver  *pond.Solver
	workers int
	log     *log.Entry

	replies chan Msg
	wg      sync.WaitGroup
}

// NewHub wraps an upgraded connection and gives it a fresh id.
func NewHub(conn *websocket.Conn, solver *pond.Solver, workers int) *Hub {
	id := uuid.New()
	return &Hub{
		id:      id,
		conn:    conn,
		solver:  solver,
		workers: workers,
		log:     log.WithField("conn", id.String()),
		replies: make(chan Msg, replyBuffer),
	}
}

// Run reads requests until the peer goes away or ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.handleResponse()
	}()
	go func() {
		<-ctx.Done()
		h.conn.Close()
	}()

	h.log.Info("connected")
	for {
		var msg Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).Warn("read")
			}
			break
		}

		h.wg.Add(1)
		go func(msg Msg) {
			defer h.wg.Done()
			h.replies <- h.handleRequest(ctx, msg)
		}(msg)
	}

	cancel()
	h.wg.Wait()
	close(h.replies)
	<-done
	h.log.Info("disconnected")
}

func (h *Hub) handleResponse() {
	for reply := range h.replies {
		if err := h.conn.WriteJSON(&reply); err != nil {
			h.log.WithError(err).WithField("type", reply.Type).Debug("write")
		}
	}
}

func (h *Hub) handleRequest(ctx context.Context, msg Msg) Msg {
	entry := h.log.WithFields(log.Fields{"type": msg.Type, "id": msg.ID})

	switch msg.Type {
	case TypeSolve:
		var p pond.Params
		if err := json.Unmarshal(msg.Content, &p); err != nil {
			return errorReply(msg.ID, fmt.Errorf("decode params: %w", err))
		}
		p = p.WithWaterDefaults()
		if err := p.Validate(); err != nil {
			return errorReply(msg.ID, err)
		}
		res := h.solver.Solve(p)
		entry.WithFields(log.Fields{"theta_p2": res.ThetaP2, "confirmed": res.Confirmed}).Debug("solved")
		return reply(TypeSolved, msg.ID, res)

	case TypeSweep:
		var req SweepRequest
		if err := json.Unmarshal(msg.Content, &req); err != nil {
			return errorReply(msg.ID, fmt.Errorf("decode sweep: %w", err))
		}
		p := req.Params.WithWaterDefaults()
		p.FlowH = req.From
		if err := p.Validate(); err != nil {
			return errorReply(msg.ID, err)
		}
		flows, err := pond.FlowRange(req.From, req.To, req.Step)
		if err != nil {
			return errorReply(msg.ID, err)
		}
		points, err := pond.Sweep(ctx, h.solver, p, flows, h.workers)
		if err != nil {
			return errorReply(msg.ID, err)
		}
		entry.WithField("points", len(points)).Debug("swept")
		return reply(TypeSwept, msg.ID, points)

	default:
		entry.Warn("unknown message type")
		return errorReply(msg.ID, fmt.Errorf("unknown message type %q", msg.Type))
	}
}
