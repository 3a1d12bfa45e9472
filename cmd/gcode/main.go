package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mriveralee/go-gcode/gcode"
	"github.com/mriveralee/go-gcode/recipe"
)

func main() {
	log.SetFlags(log.Lshortfile)

	in := flag.String("in", "", "Input gcode file (default stdin).")
	out := flag.String("out", "", "Output file (default stdout).")
	recipeFile := flag.String("recipe", "", "YAML recipe file to apply.")
	shiftArg := flag.String("shift", "", "Shift arguments, e.g. 'X=5,Y=-3'.")
	mulArg := flag.String("multiply", "", "Multiply arguments, e.g. 'X=2'.")
	from := flag.Int("from", 0, "First layer position affected by -shift/-multiply.")
	stats := flag.Bool("stats", false, "Print per-layer stats instead of gcode.")
	addr := flag.String("addr", "", "Run the HTTP server on this address instead of transforming.")
	dir := flag.String("dir", "./data", "Data directory for server mode.")
	flag.Parse()

	if *addr != "" {
		api := newAPI(*dir)
		err := http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
			api.ServeHTTP(w, req)
		}))
		log.Fatal(err)
	}

	data, err := readInput(*in)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := gcode.Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	if *recipeFile != "" {
		f, err := os.Open(*recipeFile)
		if err != nil {
			log.Fatal(err)
		}
		rec, err := recipe.Load(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		if err = rec.Apply(doc); err != nil {
			log.Fatal(err)
		}
	}

	if *shiftArg != "" {
		args, err := parseArgList(*shiftArg)
		if err != nil {
			log.Fatal(err)
		}
		doc.Shift(*from, args)
	}
	if *mulArg != "" {
		args, err := parseArgList(*mulArg)
		if err != nil {
			log.Fatal(err)
		}
		doc.Multiply(*from, args)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	if *stats {
		printStats(w, doc)
		return
	}

	_, err = io.Copy(w, gcode.NewBuffer(doc))
	if err != nil {
		log.Fatal(err)
	}
}

func readInput(name string) (string, error) {
	if name == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

// parseArgList turns 'X=5,Y=-3' into an argument map.
func parseArgList(s string) (map[byte]float64, error) {
	out := make(map[byte]float64)
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || len(k) != 1 || k[0] < 'A' || k[0] > 'Z' {
			return nil, fmt.Errorf("bad argument %q: want LETTER=value", part)
		}
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q: %v", part, err)
		}
		out[k[0]] = val
	}
	return out, nil
}

func printStats(w io.Writer, doc *gcode.Document) {
	for _, st := range documentStats(doc) {
		z := "-"
		if st.Z != nil {
			z = strconv.FormatFloat(*st.Z, 'f', -1, 64)
		}
		ext := "-"
		if st.Extents != nil {
			ext = fmt.Sprintf("(%g,%g)-(%g,%g)", st.Extents.Min.X, st.Extents.Min.Y, st.Extents.Max.X, st.Extents.Max.Y)
		}
		fmt.Fprintf(w, "layer %d: %d lines, Z=%s, extents %s\n", st.Num, st.LineCount, z, ext)
	}
}
