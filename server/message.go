package server

import (
	"encoding/json"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
)

// message types
const (
	TypeSolve  = "solve"
	TypeSolved = "solved"
	TypeSweep  = "sweep"
	TypeSwept  = "swept"
	TypeError  = "error"
)

// Msg is the envelope of every websocket frame. ID is chosen by the client
// and echoed in the reply.
type Msg struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// SweepRequest is the content of a sweep message.
type SweepRequest struct {
	Params pond.Params `json:"params"`
	From   float64     `json:"from"` // L/min
	To     float64     `json:"to"`   // L/min
	Step   float64     `json:"step"` // L/min
}

type errorContent struct {
	Error string `json:"error"`
}

func reply(typ, id string, v interface{}) Msg {
	data, err := json.Marshal(v)
	if err != nil {
		typ = TypeError
		data, _ = json.Marshal(errorContent{Error: err.Error()})
	}
	return Msg{Type: typ, ID: id, Content: data}
}

func errorReply(id string, err error) Msg {
	return reply(TypeError, id, errorContent{Error: err.Error()})
}
