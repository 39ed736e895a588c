package audio

// Source produces mono float32 audio. Render must fill out completely
// and return without blocking; it is called from the output stream's
// real-time context with whatever frame count the device asks for.
type Source interface {
	Render(out []float32)
}
