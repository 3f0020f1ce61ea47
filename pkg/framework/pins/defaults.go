package pins

// DefaultConnections returns the initial pins for a matrix with the given
// host and plugin channel counts, indexed [host][plugin].
//
// Only the first host pair is ever connected. Host channel h feeds the
// plugin channel with matching parity modulo the plugin channel count:
//
//	2 plugin channels  identity            L->0 R->1
//	1 plugin channel   both host channels  L->0 R->0
//	4 plugin channels  first two only      L->0 R->1, 2 and 3 unrouted
//
// A plugin channel count of zero yields rows without columns.
func DefaultConnections(hostChannels, pluginChannels int) [][]bool {
	if hostChannels < 0 {
		hostChannels = 0
	}
	if pluginChannels < 0 {
		pluginChannels = 0
	}
	cells := make([]bool, hostChannels*pluginChannels)
	pins := make([][]bool, hostChannels)
	for h := range pins {
		pins[h] = cells[h*pluginChannels : (h+1)*pluginChannels : (h+1)*pluginChannels]
	}
	if pluginChannels == 0 {
		return pins
	}
	for h := 0; h < min(hostChannels, 2); h++ {
		pins[h][h%pluginChannels] = true
	}
	return pins
}
