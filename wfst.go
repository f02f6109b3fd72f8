package accord

import "errors"

// ErrFSTUnavailable is returned by WFSTDecode when no finite-state toolkit
// was attached to the decoder.
var ErrFSTUnavailable = errors.New("wfst decoding requires a finite-state toolkit; none is available")

// FST is an opaque weighted finite-state transducer handle owned by an
// external toolkit.
type FST interface{}

// FSTToolkit is the capability boundary for the optional WFST decoding
// path. Implementations wrap an external finite-state library; this
// package ships none and callers must check for ErrFSTUnavailable.
type FSTToolkit interface {
	Compose(a, b FST) (FST, error)
	Determinize(f FST) (FST, error)
	Minimize(f FST) (FST, error)
	ShortestPath(f FST) (FST, error)
}

// WFSTDecode composes the input transducer with a constraint-encoding
// transducer, determinizes and minimizes the result and extracts its
// shortest path. It fails explicitly when no toolkit is attached.
func (d *Decoder) WFSTDecode(input, constraint FST) (FST, error) {
	if d.toolkit == nil {
		return nil, ErrFSTUnavailable
	}
	composed, err := d.toolkit.Compose(input, constraint)
	if err != nil {
		return nil, err
	}
	if composed, err = d.toolkit.Determinize(composed); err != nil {
		return nil, err
	}
	if composed, err = d.toolkit.Minimize(composed); err != nil {
		return nil, err
	}
	return d.toolkit.ShortestPath(composed)
}
