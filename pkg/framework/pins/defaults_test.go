package pins

import (
	"reflect"
	"testing"
)

func TestDefaultConnections(t *testing.T) {
	tests := []struct {
		name   string
		hosts  int
		plugin int
		want   [][]bool
	}{
		{
			// In
			//  ___
			// |X| |
			// | |X|
			//  ---
			name:   "StereoToStereo",
			hosts:  2,
			plugin: 2,
			want:   [][]bool{{true, false}, {false, true}},
		},
		{
			//  _
			// |X|
			// |X|
			//  -
			name:   "Mono",
			hosts:  2,
			plugin: 1,
			want:   [][]bool{{true}, {true}},
		},
		{
			//  _______
			// |X| | | |
			// | |X| | |
			//  -------
			name:   "FourChannels",
			hosts:  2,
			plugin: 4,
			want:   [][]bool{{true, false, false, false}, {false, true, false, false}},
		},
		{
			name:   "FirstPairOnly",
			hosts:  4,
			plugin: 2,
			want:   [][]bool{{true, false}, {false, true}, {false, false}, {false, false}},
		},
		{
			name:   "NoPluginChannels",
			hosts:  2,
			plugin: 0,
			want:   [][]bool{{}, {}},
		},
		{
			name:   "NoHostChannels",
			hosts:  0,
			plugin: 2,
			want:   [][]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultConnections(tt.hosts, tt.plugin)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultConnections(%d, %d) = %v, want %v", tt.hosts, tt.plugin, got, tt.want)
			}
		})
	}
}

func TestDefaultConnectionsRowsIndependent(t *testing.T) {
	pins := DefaultConnections(2, 2)
	pins[0] = append(pins[0], true)
	if pins[1][0] {
		t.Error("Appending to one row must not write into the next")
	}
}
