package gcode

// Parse builds a Document from a full program's text. Marker mode is used
// when a ;LAYER:<n> line is present anywhere, the Z-motion heuristic
// otherwise. A parse either completes or fails as a whole; no partial
// document is returned on error.
func Parse(data string) (*Document, error) {
	d := &Document{}
	var err error
	if layerMarkerRx.MatchString(data) {
		err = d.parseMarkers(data)
	} else {
		err = d.parseHeuristic(data)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func MustParse(data string) *Document {
	d, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return d
}
