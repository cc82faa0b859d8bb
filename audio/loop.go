package audio

// CrossfadeLoop blends the last fade frames of data toward its first fade frames in place
// and returns the index playback should wrap to. The final frame equals data[fade-1],
// so wrapping to data[fade] continues the signal without a seam.
// Frames before len-fade are untouched; fade is capped at half the buffer.
func CrossfadeLoop(data [][2]float64, fade int) int {
	n := len(data)
	if fade > n/2 {
		fade = n / 2
	}
	if fade <= 0 {
		return 0
	}

	start := n - fade
	for i := 0; i < fade; i++ {
		t := float64(i+1) / float64(fade)
		j := start + i
		data[j][0] = data[j][0]*(1-t) + data[i][0]*t
		data[j][1] = data[j][1]*(1-t) + data[i][1]*t
	}
	return fade
}
