package main

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mriveralee/go-gcode/gcode"
	"github.com/mriveralee/go-gcode/recipe"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client -> server ops for an interactive edit session.
const (
	opLoad      = "load"
	opShift     = "shift"
	opMultiply  = "multiply"
	opStats     = "stats"
	opConstruct = "construct"
)

type sessionRequest struct {
	Op   string             `json:"op"`
	From int                `json:"from,omitempty"`
	Args map[string]float64 `json:"args,omitempty"`
	Text string             `json:"text,omitempty"`
}

type sessionResponse struct {
	OK     bool         `json:"ok"`
	Error  string       `json:"error,omitempty"`
	Layers []layerStats `json:"layers,omitempty"`
	Gcode  string       `json:"gcode,omitempty"`
}

// session runs a websocket edit session: the client loads a document once,
// applies edits, and reads back stats or the constructed text. The document
// lives only as long as the connection.
func (a *api) session(w http.ResponseWriter, req *http.Request) {
	c, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("ERROR: upgrade: %+v", err)
		return
	}
	defer c.Close()

	var doc *gcode.Document
	for {
		var msg sessionRequest
		if err := c.ReadJSON(&msg); err != nil {
			return
		}

		resp := handleSessionOp(&doc, msg)
		if err := c.WriteJSON(resp); err != nil {
			return
		}
	}
}

func handleSessionOp(doc **gcode.Document, msg sessionRequest) sessionResponse {
	fail := func(err error) sessionResponse {
		return sessionResponse{Error: err.Error()}
	}

	if msg.Op == opLoad {
		d, err := gcode.Parse(msg.Text)
		if err != nil {
			return fail(err)
		}
		*doc = d
		return sessionResponse{OK: true, Layers: documentStats(d)}
	}

	if *doc == nil {
		return sessionResponse{Error: "no document loaded"}
	}

	switch msg.Op {
	case opShift, opMultiply:
		op := recipe.Op{Do: msg.Op, From: msg.From, Args: msg.Args}
		rec := recipe.Recipe{Ops: []recipe.Op{op}}
		if err := rec.Apply(*doc); err != nil {
			return fail(err)
		}
		return sessionResponse{OK: true, Layers: documentStats(*doc)}
	case opStats:
		return sessionResponse{OK: true, Layers: documentStats(*doc)}
	case opConstruct:
		return sessionResponse{OK: true, Gcode: (*doc).Construct()}
	}
	return sessionResponse{Error: "unknown op: " + msg.Op}
}
