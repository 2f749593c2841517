package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/rigidsim/internal/sim"
)

type BodyData struct {
	Pos [3]float64 `json:"pos"`
	Vel [3]float64 `json:"vel"`
	Acc [3]float64 `json:"acc"`
	Ori [4]float64 `json:"ori"`
	Tor [4]float64 `json:"tor"`
	Wre [4]float64 `json:"wre"`
}

type FrameData struct {
	Time   float64             `json:"time"`
	Bodies map[string]BodyData `json:"bodies"`
}

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Frames []FrameData `json:"frames"`
}

func bodyData(b *sim.Body) BodyData {
	return BodyData{
		Pos: b.Pos,
		Vel: b.Vel,
		Acc: b.Acc,
		Ori: [4]float64{b.Ori.Angle, b.Ori.Axis[0], b.Ori.Axis[1], b.Ori.Axis[2]},
		Tor: [4]float64{b.Tor.Angle, b.Tor.Axis[0], b.Tor.Axis[1], b.Tor.Axis[2]},
		Wre: [4]float64{b.Wre.Angle, b.Wre.Axis[0], b.Wre.Axis[1], b.Wre.Axis[2]},
	}
}

// ExportJSON writes the run metadata and every frame as indented JSON.
// Attitudes are encoded as [angle, x, y, z].
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		Run:    meta,
		Frames: make([]FrameData, len(frames)),
	}

	for i, f := range frames {
		fd := FrameData{Time: f.Time, Bodies: make(map[string]BodyData, len(f.Bodies))}
		for j := range f.Bodies {
			name := ""
			if j < len(meta.Bodies) {
				name = meta.Bodies[j]
			}
			fd.Bodies[name] = bodyData(&f.Bodies[j])
		}
		data.Frames[i] = fd
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
