//go:build js && wasm

package detector

import (
	"fmt"
	"syscall/js"

	pigo "github.com/esimov/pigo/core"

	"github.com/finbright/sparkfield/sim"
)

const (
	cascadePath  = "/cascade/facefinder"
	minFaceSize  = 60
	maxFaceSize  = 1200
	shiftFactor  = 0.1
	scaleFactor  = 1.1
	scoreCutoff  = 5.0
	clusterUnion = 0.1
)

// Detector locates the dominant face in grayscale webcam frames.
type Detector struct {
	classifier *pigo.Pigo
}

// New fetches and unpacks the facefinder cascade.
func New() (*Detector, error) {
	data, err := fetchCascade(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading facefinder cascade: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking facefinder cascade: %w", err)
	}
	return &Detector{classifier: classifier}, nil
}

// Largest returns the center of the highest-scoring face, or false when the
// frame has no face above the score cutoff.
func (d *Detector) Largest(pixels []uint8, width, height int) (x, y float64, ok bool) {
	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxFaceSize,
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   height,
			Cols:   width,
			Dim:    width,
		},
	}
	dets := d.classifier.ClusterDetections(d.classifier.RunCascade(params, 0.0), clusterUnion)

	best := pigo.Detection{Q: scoreCutoff}
	for _, det := range dets {
		if det.Q > best.Q {
			best = det
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return float64(best.Col), float64(best.Row), true
}

// Driver exposes the detector to the page. The page owns the webcam and
// calls the registered global with each grayscale frame; the driver maps
// the face center onto the target surface and emits move events, mirrored
// horizontally so the field follows the face like a mirror would.
type Driver struct {
	det      *Detector
	dispatch func(sim.PointerEvent)
	fn       js.Func
}

// NewDriver registers window.sparkfieldFace(pixels, width, height, outW, outH).
func NewDriver(det *Detector, dispatch func(sim.PointerEvent)) *Driver {
	drv := &Driver{det: det, dispatch: dispatch}
	drv.fn = js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 5 {
			return nil
		}
		width, height := args[1].Int(), args[2].Int()
		outW, outH := args[3].Float(), args[4].Float()
		pixels := make([]uint8, width*height)
		js.CopyBytesToGo(pixels, args[0])

		x, y, ok := det.Largest(pixels, width, height)
		if !ok {
			drv.dispatch(sim.PointerEvent{Kind: sim.PointerLeave})
			return nil
		}
		drv.dispatch(sim.PointerEvent{
			Kind: sim.PointerMove,
			X:    (1 - x/float64(width)) * outW,
			Y:    y / float64(height) * outH,
		})
		return nil
	})
	js.Global().Set("sparkfieldFace", drv.fn)
	return drv
}

func (d *Driver) Release() {
	js.Global().Set("sparkfieldFace", js.Undefined())
	d.fn.Release()
}
