package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mriveralee/go-gcode/coord"
	"github.com/mriveralee/go-gcode/gcode"
	"github.com/mriveralee/go-gcode/recipe"
)

type api struct {
	http.Handler
	dataDir string
	sse     *sse.Server
}

func newAPI(dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
	}

	r.HandleFunc("/data/{name}", a.getFile).Methods("GET")
	r.HandleFunc("/data/{name}", a.putFile).Methods("PUT")
	r.HandleFunc("/data/{name}", a.deleteFile).Methods("DELETE")

	r.HandleFunc("/api/transform", a.transform).Methods("POST")
	r.HandleFunc("/api/stats", a.stats).Methods("GET")
	r.HandleFunc("/api/session", a.session)

	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

type jobEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Layers int    `json:"layers,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (a *api) notify(ev jobEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage("/events/jobs", sse.SimpleMessage(string(data)))
}

// transform parses the request body as gcode, optionally applies a stored
// recipe named by the ?recipe= parameter, and streams back the marker-form
// result. Job lifecycle is broadcast on /events/jobs.
func (a *api) transform(w http.ResponseWriter, req *http.Request) {
	jobID := uuid.New().String()

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return
	}

	doc, err := gcode.Parse(string(data))
	if err != nil {
		log.Printf("ERROR: parse: %+v", err)
		a.notify(jobEvent{ID: jobID, Status: "failed", Error: err.Error()})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if name := req.FormValue("recipe"); name != "" {
		ok, full := safePath(a.dataDir, name)
		if !ok {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		f, err := os.Open(full)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec, err := recipe.Load(f)
		f.Close()
		if err == nil {
			err = rec.Apply(doc)
		}
		if err != nil {
			log.Printf("ERROR: recipe '%s': %+v", name, err)
			a.notify(jobEvent{ID: jobID, Status: "failed", Error: err.Error()})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	a.notify(jobEvent{ID: jobID, Status: "done", Layers: len(doc.Layers)})

	w.Header().Set("Content-Type", "text/plain")
	_, err = io.Copy(w, gcode.NewBuffer(doc))
	if err != nil {
		log.Printf("ERROR: write result: %+v", err)
	}
}

type layerStats struct {
	Num       int        `json:"num"`
	LineCount int        `json:"lines"`
	Z         *float64   `json:"z,omitempty"`
	Extents   *coord.Box `json:"extents,omitempty"`
}

func documentStats(doc *gcode.Document) []layerStats {
	out := make([]layerStats, 0, len(doc.Layers))
	for i, l := range doc.Layers {
		st := layerStats{Num: i, LineCount: len(l.Lines)}
		if ok, z := l.Z(); ok {
			v := z.Value
			st.Z = &v
		}
		if box, err := l.Extents(); err == nil {
			st.Extents = &box
		}
		out = append(out, st)
	}
	return out
}

// stats parses a stored gcode file and returns per-layer summaries.
func (a *api) stats(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.FormValue("name"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	data, err := os.ReadFile(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	doc, err := gcode.Parse(string(data))
	if err != nil {
		log.Printf("ERROR: parse '%s': %+v", name, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(documentStats(doc))
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) getFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	http.ServeFile(w, req, name)
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
