package storage

import "github.com/san-kum/rigidsim/internal/sim"

// columns is the per-body layout of a states.csv row.
var columns = []string{
	"px", "py", "pz",
	"vx", "vy", "vz",
	"ax", "ay", "az",
	"ori", "ori_x", "ori_y", "ori_z",
	"tor", "tor_x", "tor_y", "tor_z",
	"wre", "wre_x", "wre_y", "wre_z",
}

// Header returns the states.csv header for the given body names.
func Header(bodies []string) []string {
	h := make([]string, 0, 1+len(bodies)*len(columns))
	h = append(h, "time")
	for _, name := range bodies {
		for _, c := range columns {
			h = append(h, name+"."+c)
		}
	}
	return h
}

// Column returns the index of name in a state row (time excluded), or -1.
func Column(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i - 1
		}
	}
	return -1
}

func encodeBody(b *sim.Body) []float64 {
	return []float64{
		b.Pos[0], b.Pos[1], b.Pos[2],
		b.Vel[0], b.Vel[1], b.Vel[2],
		b.Acc[0], b.Acc[1], b.Acc[2],
		b.Ori.Angle, b.Ori.Axis[0], b.Ori.Axis[1], b.Ori.Axis[2],
		b.Tor.Angle, b.Tor.Axis[0], b.Tor.Axis[1], b.Tor.Axis[2],
		b.Wre.Angle, b.Wre.Axis[0], b.Wre.Axis[1], b.Wre.Axis[2],
	}
}

func decodeBody(v []float64) sim.Body {
	var b sim.Body
	copy(b.Pos[:], v[0:3])
	copy(b.Vel[:], v[3:6])
	copy(b.Acc[:], v[6:9])
	b.Ori.Angle = v[9]
	copy(b.Ori.Axis[:], v[10:13])
	b.Tor.Angle = v[13]
	copy(b.Tor.Axis[:], v[14:17])
	b.Wre.Angle = v[17]
	copy(b.Wre.Axis[:], v[18:21])
	return b
}
